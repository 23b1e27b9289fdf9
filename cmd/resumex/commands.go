package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/resumex/internal/corpus"
	"github.com/cognicore/resumex/pkg/resumex"
	"github.com/cognicore/resumex/pkg/resumex/convert"
	"github.com/cognicore/resumex/pkg/resumex/record"
)

type extractResult struct {
	Source string        `json:"source"`
	Key    string        `json:"key,omitempty"`
	Error  string        `json:"error,omitempty"`
	Record record.Record `json:"record"`
}

type docError struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Error string `json:"error"`
}

type batchOutput struct {
	Key       string              `json:"key,omitempty"`
	Documents int                 `json:"documents"`
	Failed    int                 `json:"failed"`
	Errors    []docError          `json:"errors,omitempty"`
	Records   []record.Record     `json:"records"`
	Ledger    map[string][]string `json:"ledger"`
}

func extractCmd(flags *globalFlags) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract one record per résumé file (\"-\" reads plain text from stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx, flags, save)
			if err != nil {
				return err
			}
			defer a.close()

			inputs, err := readInputs(cmd, a, args)
			if err != nil {
				return err
			}

			results := make([]extractResult, len(inputs))
			for i, in := range inputs {
				results[i].Source = in.ID
				if in.Err != nil {
					results[i].Error = in.Err.Error()
					results[i].Record = a.engine.Empty()
					continue
				}
				rec, err := a.engine.Extract(ctx, in.Text)
				results[i].Record = rec
				if err != nil {
					results[i].Error = err.Error()
					continue
				}
				if save {
					key, err := a.engine.Save(ctx, rec)
					if err != nil {
						return fmt.Errorf("save %s: %w", in.ID, err)
					}
					results[i].Key = key
				}
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "persist each record under its first email")
	return cmd
}

// readInputs converts the named files; "-" is read from stdin as text.
func readInputs(cmd *cobra.Command, a *app, args []string) ([]resumex.Input, error) {
	loader := corpus.Loader{Registry: convert.NewRegistry(), Workers: a.cfg.Workers, Logger: a.logger}

	var files []string
	for _, arg := range args {
		if arg != "-" {
			files = append(files, arg)
		}
	}
	converted, err := loader.LoadFiles(cmd.Context(), files)
	if err != nil {
		return nil, err
	}

	inputs := make([]resumex.Input, 0, len(args))
	for _, arg := range args {
		if arg != "-" {
			inputs = append(inputs, converted[0])
			converted = converted[1:]
			continue
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		text, err := convert.PlainText(cmd.Context(), data)
		inputs = append(inputs, resumex.Input{ID: "stdin", Text: text, Err: err})
	}
	return inputs, nil
}

func batchCmd(flags *globalFlags) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "batch PATH",
		Short: "Process a directory, zip archive or JSONL file and print records with the skill ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx, flags, !noSave)
			if err != nil {
				return err
			}
			defer a.close()

			loader := corpus.Loader{Registry: convert.NewRegistry(), Workers: a.cfg.Workers, Logger: a.logger}
			inputs, err := loader.Load(ctx, args[0])
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}

			b := a.engine.ProcessInputs(ctx, inputs)
			out := batchOutput{
				Documents: len(inputs),
				Failed:    b.Failed(),
				Records:   b.Records,
				Ledger:    b.Ledger.Snapshot(),
			}
			for i, err := range b.Errors {
				if err != nil {
					out.Errors = append(out.Errors, docError{Index: i, ID: inputs[i].ID, Error: err.Error()})
				}
			}

			if !noSave {
				key, err := a.engine.SaveBatch(ctx, b.Records)
				if err != nil {
					return fmt.Errorf("save batch: %w", err)
				}
				out.Key = key
				a.logger.Info("Batch saved", zap.String("key", key), zap.Int("records", len(b.Records)))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the batch as a collection")
	return cmd
}

func fetchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch KEY",
		Short: "Print the records stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), flags, true)
			if err != nil {
				return err
			}
			defer a.close()

			recs, err := a.engine.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), recs)
		},
	}
}

func keysCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), flags, true)
			if err != nil {
				return err
			}
			defer a.close()

			keys, err := a.store.Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func deleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete the records stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), flags, true)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func lexiconCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lexicon",
		Short: "Show the active skill categories and link platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer a.close()

			lex := a.comp.Lexicon
			stats := lex.Stats()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Categories: %d  Phrases: %d  Link groups: %d  Platforms: %d\n",
				stats.Categories, stats.Phrases, stats.LinkGroups, stats.Platforms)
			for _, cat := range lex.Categories() {
				fmt.Fprintf(w, "  %-24s %d phrases\n", cat, len(lex.Phrases(cat)))
			}
			for _, group := range lex.GroupNames() {
				fmt.Fprintf(w, "  %-24s %v\n", group, lex.PlatformNames(group))
			}
			return nil
		},
	}
}
