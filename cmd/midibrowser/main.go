// Package main is the entry point for the midibrowser CLI
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/midibrowser/pkg/api"
	"github.com/james-see/midibrowser/pkg/browser"
	"github.com/james-see/midibrowser/pkg/smf"
	"github.com/james-see/midibrowser/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	strict     bool
	trackIndex int
	outputFile string
	asJSON     bool
	serverPort int
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "midibrowser",
	Short: "Browse the structure of Standard MIDI Files",
	Long: `midibrowser decodes Standard MIDI Files into a tree of chunks and
events, shows the properties of every node and exports note-on records
of a track.

Examples:
  midibrowser chunks song.mid
  midibrowser events song.mid --track 1
  midibrowser tree song.mid --json
  midibrowser export song.mid -t 0 -o export.xml
  midibrowser tui song.mid
  midibrowser serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var chunksCmd = &cobra.Command{
	Use:   "chunks <file.mid>",
	Short: "List the top-level chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunks,
}

var headerCmd = &cobra.Command{
	Use:   "header <file.mid>",
	Short: "Show the MThd header",
	Args:  cobra.ExactArgs(1),
	RunE:  runHeader,
}

var eventsCmd = &cobra.Command{
	Use:   "events <file.mid>",
	Short: "List the events of one track",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

var treeCmd = &cobra.Command{
	Use:   "tree <file.mid>",
	Short: "Print the fully expanded node tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.mid>",
	Short: "Export the note-on records of one track",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var tuiCmd = &cobra.Command{
	Use:   "tui [file.mid]",
	Short: "Launch interactive terminal browser",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail on overlong chunks and unsupported status bytes")

	// events command
	eventsCmd.Flags().IntVarP(&trackIndex, "track", "t", 0, "Zero-based track index")

	// tree command
	treeCmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")

	// export command
	exportCmd.Flags().IntVarP(&trackIndex, "track", "t", 0, "Zero-based track index")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", browser.DefaultExportPath, "Output file path")

	// tui command
	tuiCmd.Flags().StringVarP(&outputFile, "output", "o", browser.DefaultExportPath, "Export file path")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(chunksCmd)
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func decodeOptions() []smf.Option {
	if strict {
		return []smf.Option{smf.Strict()}
	}
	return nil
}

func browserOptions() browser.Options {
	return browser.Options{Strict: strict, ExportPath: outputFile}
}

func runChunks(cmd *cobra.Command, args []string) error {
	src, err := smf.Open(args[0])
	if err != nil {
		return err
	}

	s := smf.NewChunkScanner(src, decodeOptions()...)
	for s.Next() {
		c := s.Chunk()
		fmt.Printf("%08x  %s  %d bytes\n", c.Offset, c.Type, c.Length)
	}
	return s.Err()
}

func runHeader(cmd *cobra.Command, args []string) error {
	src, err := smf.Open(args[0])
	if err != nil {
		return err
	}

	s := smf.NewChunkScanner(src, decodeOptions()...)
	for s.Next() {
		if s.Chunk().Kind() != smf.KindHeader {
			continue
		}
		h, err := smf.DecodeHeader(src, s.Chunk())
		if err != nil {
			return err
		}
		fmt.Printf("Format:   %d\n", h.Format)
		fmt.Printf("Tracks:   %d\n", h.Tracks)
		fmt.Printf("Division: %s\n", h.Division)
		return nil
	}
	if err := s.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%s: no %s chunk", args[0], smf.TagHeader)
}

func runEvents(cmd *cobra.Command, args []string) error {
	f, err := browser.Open(args[0], browserOptions())
	if err != nil {
		return err
	}
	track, err := f.Track(trackIndex)
	if err != nil {
		return err
	}

	r := track.Events()
	for r.Next() {
		fmt.Printf("%8d  %s\n", r.Time(), r.Event())
	}
	return r.Err()
}

func runTree(cmd *cobra.Command, args []string) error {
	f, err := browser.Open(args[0], browserOptions())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(browser.Snapshot(f))
	}

	return browser.Walk(f, func(n browser.Node, depth int) error {
		line := strings.Repeat("  ", depth) + n.Describe()
		if _, ok := n.(*browser.ErrorNode); ok {
			line = errorStyle.Render(line)
		}
		fmt.Println(line)
		return nil
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := browser.Open(args[0], browserOptions())
	if err != nil {
		return err
	}
	track, err := f.Track(trackIndex)
	if err != nil {
		return err
	}

	fmt.Println(dimStyle.Render(fmt.Sprintf("Exporting track %d of %s -> %s", trackIndex, args[0], outputFile)))
	if err := track.Execute(browser.ActionExport); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Export complete!"))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	return tui.Run(path, browserOptions())
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
