// Command factharbor-cli runs one claim-verification analysis end to end
// and prints the result JSON (or writes it to --out-json), optionally
// writing the report markdown to --out-report, the offline/demo
// counterpart to cmd/factharbor-api. Grounded on the teacher's
// cmd/archflow: flags for the one-shot inputs, godotenv + flag-driven
// wiring, then a single call into the pipeline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robertschaub/FactHarbor-sub001/internal/app"
	"github.com/robertschaub/FactHarbor-sub001/internal/orchestrator"
)

func main() {
	input := flag.String("input", "", "claim or yes/no question to analyze (mutually exclusive with --url)")
	url := flag.String("url", "", "article URL to analyze (mutually exclusive with --input)")
	jobID := flag.String("job-id", "", "job id for this run; a UUID is generated if empty")
	outJSON := flag.String("out-json", "", "write the result JSON to this path (stdout if empty)")
	outReport := flag.String("out-report", "", "write the report markdown to this path (not written if empty)")
	quiet := flag.Bool("quiet", false, "suppress onEvent progress lines on stderr")
	configArgs := flag.String("config-flags", "", "extra config flags passed through to internal/config.Load, space separated")
	flag.Parse()

	if (*input == "") == (*url == "") {
		log.Fatal("exactly one of --input or --url is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Minute)
	defer cancel()

	a, err := app.New(ctx, splitFlags(*configArgs))
	if err != nil {
		log.Fatalf("factharbor-cli: %v", err)
	}
	defer a.Close()

	id := strings.TrimSpace(*jobID)
	if id == "" {
		id = uuid.NewString()
	}
	a.BindJob(id, 64, func(message string, progress int) {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", progress, message)
		}
	})

	in := orchestrator.Input{JobID: id}
	if *url != "" {
		in.InputType = orchestrator.InputURL
		in.Value = *url
	} else {
		in.InputType = orchestrator.InputText
		in.Value = *input
	}

	result, markdown, err := a.Deps.RunAnalysis(ctx, in)
	if err != nil {
		log.Fatalf("factharbor-cli: analysis failed: %v", err)
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("factharbor-cli: marshal result: %v", err)
	}
	if err := writeOrPrint(*outJSON, payload); err != nil {
		log.Fatalf("factharbor-cli: %v", err)
	}
	if *outReport != "" {
		if err := os.WriteFile(*outReport, []byte(markdown), 0o644); err != nil {
			log.Fatalf("factharbor-cli: writing report: %v", err)
		}
	}
}

func writeOrPrint(path string, payload []byte) error {
	if path == "" {
		fmt.Println(string(payload))
		return nil
	}
	return os.WriteFile(path, payload, 0o644)
}

func splitFlags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
