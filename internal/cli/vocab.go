package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// vocabOutput is the JSON document printed by the vocab command.
type vocabOutput struct {
	Source string         `json:"source"`
	Words  int            `json:"words"`
	Sizes  []vocabSizeRow `json:"sizes"`
}

type vocabSizeRow struct {
	Length int `json:"length"`
	Count  int `json:"count"`
}

// NewVocabCommand creates the cobra command for "hangman-solver vocab".
func NewVocabCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Show the word list in use",
		Long: `Show where the vocabulary is loaded from and how many words it holds
for each length. The lengths listed are the ones a secret word may have.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocab(cmd.OutOrStdout())
		},
	}
}

// runVocab executes the vocab command logic.
func runVocab(w io.Writer) error {
	store, source, err := loadVocabulary()
	if err != nil {
		return err
	}

	counts := store.CountBySize()
	doc := vocabOutput{Source: source, Words: store.Len(), Sizes: []vocabSizeRow{}}
	for _, n := range store.Sizes() {
		doc.Sizes = append(doc.Sizes, vocabSizeRow{Length: n, Count: counts[n]})
	}

	if IsJSONOutput() {
		return writeJSON(w, doc)
	}

	fmt.Fprintf(w, "Vocabulary: %s (%d words)\n\n", doc.Source, doc.Words)
	fmt.Fprintf(w, "%-8s %s\n", "LENGTH", "WORDS")
	for _, row := range doc.Sizes {
		fmt.Fprintf(w, "%-8d %d\n", row.Length, row.Count)
	}
	return nil
}
