package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dot2archimate/converter/internal/convert"
	"github.com/dot2archimate/converter/internal/logger"
	"github.com/dot2archimate/converter/internal/mapping"
	"github.com/dot2archimate/converter/internal/result"
)

func main() {
	input := flag.String("input", "", "Path to DOT file (or - for stdin)")
	output := flag.String("o", "", "Output XML file (default stdout); output directory in batch mode")
	configPath := flag.String("config", "", "Path to HCL mapping configuration (built-in defaults when empty)")
	batch := flag.String("batch", "", "Convert every .dot/.gv file in this directory")
	jsonOut := flag.Bool("json", false, "Output diagnostics as JSON")
	logFormat := flag.String("log-format", "json", "Log output format: 'text' or 'json'")
	flag.Parse()

	log := logger.New(*logFormat)

	if *input == "" && *batch == "" {
		fmt.Fprintln(os.Stderr, "usage: dot2archimate -input <file|-> [-o out.xml] [-config rules.hcl] [-json]")
		fmt.Fprintln(os.Stderr, "       dot2archimate -batch <dir> -o <outdir> [-config rules.hcl] [-json]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := mapping.DefaultConfig()
	if *configPath != "" {
		loaded, err := mapping.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(2)
		}
		cfg = loaded
	}

	if *batch != "" {
		os.Exit(runBatch(*batch, *output, cfg, *jsonOut, log))
	}
	os.Exit(runSingle(*input, *output, cfg, *jsonOut))
}

func runSingle(input, output string, cfg *mapping.Config, jsonOut bool) int {
	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return 2
	}

	res := convert.Convert(string(data), cfg)
	printDiagnostics(res, jsonOut)
	if !res.Success {
		return 1
	}

	if output == "" || output == "-" {
		_, _ = os.Stdout.Write(res.XML)
		return 0
	}
	if err := os.WriteFile(output, res.XML, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", output, err)
		return 2
	}
	return 0
}

func runBatch(dir, outDir string, cfg *mapping.Config, jsonOut bool, log *slog.Logger) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read batch directory: %v\n", err)
		return 2
	}
	if outDir == "" {
		outDir = "output"
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		return 2
	}

	inputs := make(map[string][]byte)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".dot" && ext != ".gv" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", e.Name(), err)
			return 2
		}
		inputs[e.Name()] = data
	}

	batchRes := convert.Files(inputs, cfg)
	for _, fr := range batchRes.Results {
		if !fr.Result.Success {
			printDiagnosticsFor(fr.Name, fr.Result, jsonOut)
			continue
		}
		name := strings.TrimSuffix(fr.Name, filepath.Ext(fr.Name)) + ".xml"
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, fr.Result.XML, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			return 2
		}
		log.Info("converted", "input", fr.Name, "output", path)
	}

	fmt.Printf("converted %d, failed %d\n", batchRes.Converted, batchRes.Failed)
	if batchRes.Failed > 0 {
		return 1
	}
	return 0
}

func printDiagnostics(res *result.ConversionResult, jsonOut bool) {
	printDiagnosticsFor("", res, jsonOut)
}

func printDiagnosticsFor(name string, res *result.ConversionResult, jsonOut bool) {
	if res.Success && len(res.Warnings) == 0 {
		return
	}
	if jsonOut {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res)
		return
	}
	prefix := ""
	if name != "" {
		prefix = name + ": "
	}
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "ERROR %s%s\n", prefix, e.Message)
		if e.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  suggestion: %s\n", e.Suggestion)
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "WARN %s%s\n", prefix, w.Message)
	}
}
