// Command redact is a thin CLI over the PHI detection and redaction
// library: scan a document for detections, or apply a redaction pass
// and write the result.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"phi-redactor/internal/apply"
	"phi-redactor/internal/config"
	"phi-redactor/internal/dictionary"
	"phi-redactor/internal/metrics"
	"phi-redactor/internal/pipeline"
	"phi-redactor/internal/span"
	"phi-redactor/internal/stream"
	"phi-redactor/internal/vault"
)

// anonSalt keys the token-preview IDs printed by `scan`. It is not a
// secret boundary — a deployment that needs stable tokens across runs
// should source this from config instead.
const anonSalt = "phi-redactor-cli"

var (
	inputPath   string
	outputPath  string
	queryRange  string
	streamChunk int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redact",
	Short: "Detect and redact protected health information in clinical text",
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a document and print detections as JSON",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Scan a document and write the redacted text",
	Args:  cobra.NoArgs,
	RunE:  runApply,
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Scan stdin incrementally, printing each detection as soon as its segment flushes",
	Args:  cobra.NoArgs,
	RunE:  runStream,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "in", "i", "", "input file path (default: stdin)")
	applyCmd.Flags().StringVarP(&outputPath, "out", "o", "", "output file path (default: stdout)")
	scanCmd.Flags().StringVarP(&queryRange, "query", "q", "", "only print findings overlapping this character_start:character_end range")
	streamCmd.Flags().IntVarP(&streamChunk, "chunk-bytes", "c", 4096, "bytes read per stdin chunk")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(streamCmd)
}

func buildPipeline() *pipeline.Pipeline {
	cfg := config.Load()
	dict := dictionary.New(builtinFirstNames, builtinSurnames)
	return pipeline.New(dict, cfg, metrics.New())
}

func readInput() (string, error) {
	if inputPath == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", inputPath, err)
	}
	return string(data), nil
}

// parseRange parses a "start:end" character_start/character_end pair
// for the --query flag.
func parseRange(s string) (uint32, uint32, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --query range %q, want start:end", s)
	}
	start, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --query start %q: %w", parts[0], err)
	}
	end, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --query end %q: %w", parts[1], err)
	}
	return uint32(start), uint32(end), nil
}

// matchFindings filters findings down to those whose detection appears
// in overlapping, as returned by an interval.Tree query.
func matchFindings(findings []pipeline.Finding, overlapping []span.Detection) []pipeline.Finding {
	want := make(map[span.Detection]struct{}, len(overlapping))
	for _, d := range overlapping {
		want[d] = struct{}{}
	}
	out := make([]pipeline.Finding, 0, len(overlapping))
	for _, f := range findings {
		if _, ok := want[f.Detection]; ok {
			out = append(out, f)
		}
	}
	return out
}

type scanResult struct {
	FilterType string  `json:"filterType"`
	Text       string  `json:"text"`
	Start      uint32  `json:"characterStart"`
	End        uint32  `json:"characterEnd"`
	Score      float64 `json:"score"`
	Decision   string  `json:"decision"`
	AnonID     string  `json:"anonId"`
}

func runScan(cmd *cobra.Command, args []string) error {
	text, err := readInput()
	if err != nil {
		return err
	}

	p := buildPipeline()
	findings := p.Detect(text)

	if queryRange != "" {
		start, end, err := parseRange(queryRange)
		if err != nil {
			return err
		}
		idx := p.Index(findings)
		overlapping := idx.FindOverlaps(start, end)
		findings = matchFindings(findings, overlapping)
	}

	results := make([]scanResult, 0, len(findings))
	for _, f := range findings {
		results = append(results, scanResult{
			FilterType: string(f.Detection.FilterType),
			Text:       f.Detection.Text,
			Start:      f.Detection.CharacterStart,
			End:        f.Detection.CharacterEnd,
			Score:      f.Score.Score,
			Decision:   string(f.Score.Decision),
			AnonID:     vault.DICOMHashToken(anonSalt, f.Detection.Text),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func runApply(cmd *cobra.Command, args []string) error {
	text, err := readInput()
	if err != nil {
		return err
	}

	p := buildPipeline()
	findings := p.Detect(text)

	replacements := make([]apply.Replacement, 0, len(findings))
	for _, f := range findings {
		if f.Score.Decision != "PHI" {
			continue
		}
		replacements = append(replacements, apply.Replacement{
			CharacterStart: f.Detection.CharacterStart,
			CharacterEnd:   f.Detection.CharacterEnd,
			Text:           "[" + string(f.Detection.FilterType) + "]",
		})
	}

	redacted := apply.Apply(text, replacements)

	if outputPath == "" {
		_, err := fmt.Fprint(os.Stdout, redacted)
		return err
	}
	return os.WriteFile(outputPath, []byte(redacted), 0o644)
}

type streamDetection struct {
	FilterType string `json:"filterType"`
	Text       string `json:"text"`
	Start      uint32 `json:"characterStart"`
	End        uint32 `json:"characterEnd"`
}

// runStream reads stdin in fixed-size byte chunks, feeding them
// through a stream.Kernel to find safe flush points and a
// stream.ScanningKernel to translate each flushed segment's
// detections back into the full document's coordinate space. Each
// detection is printed as a JSON line as soon as its segment flushes,
// rather than waiting for the whole document to be read.
func runStream(cmd *cobra.Command, args []string) error {
	if inputPath != "" {
		return fmt.Errorf("stream reads from stdin only; --in is not supported with stream")
	}
	if streamChunk <= 0 {
		streamChunk = 4096
	}

	cfg := config.Load()
	p := buildPipeline()
	kernel := stream.New(stream.Mode(cfg.StreamMode), uint32(cfg.StreamBufferSize), uint32(cfg.StreamOverlap))
	scanner := p.NewStreamScanner(uint32(cfg.StreamOverlap))

	enc := json.NewEncoder(os.Stdout)
	emit := func(dets []span.Detection) error {
		for _, d := range dets {
			if err := enc.Encode(streamDetection{
				FilterType: string(d.FilterType),
				Text:       d.Text,
				Start:      d.CharacterStart,
				End:        d.CharacterEnd,
			}); err != nil {
				return err
			}
		}
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	buf := make([]byte, streamChunk)
	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			kernel.Push(string(buf[:n]))
			for {
				segment, ok := kernel.PopSegment(false)
				if !ok {
					break
				}
				if err := emit(scanner.Push(segment)); err != nil {
					return err
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
	}

	for {
		segment, ok := kernel.PopSegment(true)
		if !ok {
			break
		}
		if err := emit(scanner.Push(segment)); err != nil {
			return err
		}
	}
	return nil
}
