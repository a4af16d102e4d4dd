package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bodul/crosswords/puzzle"
)

var (
	configPath string
	servePort  string

	renderWords []string
	renderStats bool
)

var rootCmd = &cobra.Command{
	Use:   "crossword",
	Short: "Build and validate crossword puzzles",
	Long: `Places words on an unbounded grid, refusing any word that clashes with
the words already placed. Crossing words must share a letter; parallel
words must keep one empty cell between them.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the grid formed by a list of words",
	Long: `Builds a puzzle from --word flags, in order, and prints the grid.
Each word is X,Y,ORIENTATION,TEXT where ORIENTATION is H or V.
Words that do not fit are reported on stderr and left out.`,
	Example: `  crossword render -w 0,0,H,CAT -w 0,0,V,COW`,
	Args:    cobra.NoArgs,
	RunE:    runRender,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides config and PORT)")

	renderCmd.Flags().StringArrayVarP(&renderWords, "word", "w", nil, "word as X,Y,H|V,TEXT (repeatable)")
	renderCmd.Flags().BoolVar(&renderStats, "stats", false, "print word counts and size after the grid")
	_ = renderCmd.MarkFlagRequired("word")

	rootCmd.AddCommand(serveCmd, renderCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	ctx := context.Background()

	var gemini *GeminiClient
	if cfg.ProjectID != "" {
		gemini, err = NewGeminiClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("init gemini: %w", err)
		}
		defer gemini.Close()
		log.Printf("Gemini client ready (project: %s, model: %s)", cfg.ProjectID, cfg.Model)
	} else {
		log.Println("GCP_PROJECT_ID not set, image import disabled")
	}

	srv := NewServer(NewStore(), gemini, cfg)
	defer srv.Close()

	log.Printf("Server listening on http://localhost:%s", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, srv)
}

func runRender(cmd *cobra.Command, _ []string) error {
	words := make([]puzzle.Word, 0, len(renderWords))
	for _, spec := range renderWords {
		w, err := parseWordSpec(spec)
		if err != nil {
			return err
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return ErrNoWords
	}

	c := puzzle.New(words[0])
	for _, w := range words[1:] {
		if !c.InsertWord(w) {
			cmd.PrintErrf("rejected %s\n", w)
		}
	}

	if _, err := c.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}
	if renderStats {
		hc, vc := c.WordCount()
		size := c.Size()
		fmt.Fprintf(cmd.OutOrStdout(), "horizontal=%d vertical=%d size=%dx%d\n", hc, vc, size.Width, size.Height)
	}
	return nil
}

// parseWordSpec parses "X,Y,O,TEXT". TEXT may be empty and may itself
// contain commas.
func parseWordSpec(spec string) (puzzle.Word, error) {
	parts := strings.SplitN(spec, ",", 4)
	if len(parts) < 3 {
		return puzzle.Word{}, fmt.Errorf("word %q: want X,Y,H|V,TEXT", spec)
	}
	x, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 0)
	if err != nil {
		return puzzle.Word{}, fmt.Errorf("word %q: bad X: %w", spec, err)
	}
	y, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 0)
	if err != nil {
		return puzzle.Word{}, fmt.Errorf("word %q: bad Y: %w", spec, err)
	}
	o, err := puzzle.ParseOrientation(parts[2])
	if err != nil {
		return puzzle.Word{}, fmt.Errorf("word %q: %w", spec, err)
	}
	var text string
	if len(parts) == 4 {
		text = parts[3]
	}
	w, err := puzzle.MakeWord(uint(x), uint(y), o, text)
	if err != nil {
		return puzzle.Word{}, fmt.Errorf("word %q: %w", spec, err)
	}
	return w, nil
}
