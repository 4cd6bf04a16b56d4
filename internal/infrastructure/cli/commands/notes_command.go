package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	notesapp "github.com/doeshing/baseconv/internal/application/notes"
	"github.com/doeshing/baseconv/internal/domain"
)

// NewNotesCommand creates the notes command with all subcommands
func NewNotesCommand(container *app.Container) *cobra.Command {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Keep notes alongside your conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return searchNotes(cmd, container, "")
		},
	}

	notesCmd.AddCommand(
		newNotesAddCommand(container),
		&cobra.Command{
			Use:   "list",
			Short: "List notes, most recently updated first",
			RunE: func(cmd *cobra.Command, args []string) error {
				return searchNotes(cmd, container, "")
			},
		},
		newNotesEditCommand(container),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a note",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner := container.AccountService.CurrentUsername()
				if err := container.NotesService.Delete(cmd.Context(), owner, args[0]); err != nil {
					return noteError(err, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Find notes whose title or content contains the query",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return searchNotes(cmd, container, strings.Join(args, " "))
			},
		},
	)

	return notesCmd
}

func newNotesAddCommand(container *app.Container) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := container.AccountService.CurrentUsername()
			note, err := container.NotesService.Add(cmd.Context(), owner, title, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title (required)")
	cmd.Flags().StringVar(&content, "content", "", "Note body")
	return cmd
}

func newNotesEditCommand(container *app.Container) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update notesapp.NoteUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("content") {
				update.Content = &content
			}
			if update.Title == nil && update.Content == nil {
				return errors.New(ErrNothingToUpdate)
			}
			owner := container.AccountService.CurrentUsername()
			note, err := container.NotesService.Edit(cmd.Context(), owner, args[0], update)
			if err != nil {
				return noteError(err, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	return cmd
}

func searchNotes(cmd *cobra.Command, container *app.Container, query string) error {
	owner := container.AccountService.CurrentUsername()
	notes, err := container.NotesService.Search(cmd.Context(), owner, query)
	if err != nil {
		return err
	}
	printNotes(cmd.OutOrStdout(), notes)
	return nil
}

func printNotes(out io.Writer, notes []domain.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(out, MsgNoNotes)
		return
	}
	for _, n := range notes {
		fmt.Fprintf(out, "%s  %s  (%s)\n", n.ID, n.Title, humanize.Time(n.UpdatedAt))
		if n.Content != "" {
			fmt.Fprintf(out, "    %s\n", n.Content)
		}
	}
}

func noteError(err error, id string) error {
	if errors.Is(err, domain.ErrNoteNotFound) {
		return fmt.Errorf("no note with id %s", id)
	}
	return err
}
