/*
Copyright © 2025 The vocan authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aladaia/vocan/internal/ioexport"
	"github.com/aladaia/vocan/pkg/config"
	"github.com/aladaia/vocan/pkg/query"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getAskCmd returns the ask command.
func getAskCmd() *cobra.Command {
	var outDir string

	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about the results of the last analysis",
		Long: `Answer a question from the artifacts of the last run.

Questions are matched to a fixed set of intents in French or English:
global summary, zone comparison, best and worst stores, a tag deep-dive,
sample reviews of a tag, sentiment quality, the tagging plan, a store
or a region. Nothing is recomputed: answers come from the artifacts.

Without a question, questions are read from standard input, one per
line, until end of input or 'quit'.

Examples:
  vocan ask "résumé global"
  vocan ask "les 5 pires magasins"
  vocan ask "exemples pour attente"
  vocan ask -o data/analysis "qualité du NLP"
  vocan ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("out") {
				cfg.Update([]config.Option{config.OptOutputDir(outDir)})
			}

			err := runAsk(cmd, strings.Join(args, " "))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	askCmd.Flags().StringVarP(
		&outDir, "out", "o", "",
		"directory with analysis artifacts",
	)

	return askCmd
}

func runAsk(cmd *cobra.Command, question string) error {
	b, man, err := ioexport.LoadBundle(cfg.Output.Dir)
	if err != nil {
		return err
	}
	slog.Info("Artifacts loaded",
		"dir", cfg.Output.Dir,
		"run_id", man.RunID,
		"created_at", man.CreatedAt,
	)

	e := query.New(b)
	out := cmd.OutOrStdout()
	if question != "" {
		return answer(e, out, question)
	}
	return interactive(e, cmd.InOrStdin(), out)
}

func answer(e *query.Engine, w io.Writer, question string) error {
	ans, err := e.Ask(question)
	slog.Info("Question answered",
		"question", question,
		"intent", ans.Query.Intent.String(),
	)
	fmt.Fprintln(w, ans.Text)
	return err
}

// interactive answers questions read line by line. Unknown questions
// print the help text and do not stop the loop.
func interactive(e *query.Engine, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !sc.Scan() {
			fmt.Fprintln(w)
			return sc.Err()
		}
		q := strings.TrimSpace(sc.Text())
		switch strings.ToLower(q) {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		}
		_ = answer(e, w, q)
		fmt.Fprintln(w)
	}
}
