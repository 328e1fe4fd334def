// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"library-catalog/internal/logger"
	"library-catalog/internal/repository"
	"library-catalog/internal/transfer"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the whole catalog as YAML",
	Example: "  catalog export > catalog.yaml\n  catalog export -o backup.yaml",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var w io.Writer = os.Stdout
		if exportOutput != "" && exportOutput != "-" {
			f, ferr := os.Create(exportOutput)
			if ferr != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, ferr)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("failed to write %s: %w", exportOutput, cerr)
				}
			}()
			w = f
		}

		err = withService(cmd.Context(), func(svc *repository.Service) error {
			return transfer.Export(cmd.Context(), svc, w)
		})
		if err == nil && w != os.Stdout {
			successColor.Fprintf(os.Stderr, "Catalog exported to %s\n", identifierColor.Sprint(exportOutput))
		}
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add the records of a YAML export to the catalog",
	Long: `Reads a document written by 'catalog export' and adds its records.
Authors already present with identical fields and publishers with the same
name are reused, and books whose title already exists are skipped. Books refer
to their author and publisher by the id written in the document. Records that fail validation are
reported and do not stop the import.`,
	Example: "  catalog import backup.yaml",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		var sum transfer.Summary
		err = withService(cmd.Context(), func(svc *repository.Service) error {
			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
			s.Color("cyan")
			s.Suffix = " Importing..."
			s.Start()
			defer s.Stop()

			var err error
			sum, err = transfer.Import(cmd.Context(), svc, f, func(done, total int) {
				s.Lock()
				s.Suffix = fmt.Sprintf(" Importing record %d/%d...", done, total)
				s.Unlock()
			}, logger.Get())
			return err
		})
		if err != nil {
			return err
		}

		successColor.Printf("Imported %d author(s), %d publisher(s), %d book(s).\n",
			sum.AuthorsCreated, sum.PublishersCreated, sum.BooksCreated)
		if sum.Skipped > 0 {
			dimColor.Printf("Skipped %d existing record(s).\n", sum.Skipped)
		}
		for _, e := range sum.Errors {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		if len(sum.Errors) > 0 {
			return errors.New("some records could not be imported")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}
