// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"library-catalog/internal/catalog"
	"library-catalog/internal/dispatch"
	"library-catalog/internal/repository"
)

var listCmd = &cobra.Command{
	Use:               "list <authors|publishers|books>",
	Short:             "List every record of one type",
	Example:           "  catalog list authors\n  catalog list books --db ./library.db",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: kindCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalog.ParseKind(args[0])
		if err != nil {
			return err
		}

		return withService(cmd.Context(), func(svc *repository.Service) error {
			statusColor.Printf("All %s:\n", kind.Plural())
			return dispatch.WriteList(cmd.Context(), svc, kind, os.Stdout)
		})
	},
}
