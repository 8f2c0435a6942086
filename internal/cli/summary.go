package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/gjson"

	"github.com/gripbench/gripbench/internal/output"
)

// SummaryCmd aggregates a recorded runs file: per-model record and error
// counts. Non-record lines (info objects, partial writes) are skipped.
type SummaryCmd struct {
	File string `arg:"" required:"" help:"Runs JSONL file to summarize"`
}

// Run executes the summary command
func (c *SummaryCmd) Run(globals *Globals) error {
	file, err := os.Open(c.File)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot open file: %s", err))
	}
	defer file.Close()

	counts := map[string]*output.ModelSummary{}
	var order []string
	total, totalErrors := 0, 0

	// Record lines can carry multi-megabyte response text; the cap matches
	// what the runner itself is able to write.
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !gjson.ValidBytes(line) {
			continue
		}

		model := gjson.GetBytes(line, "model")
		response := gjson.GetBytes(line, "response_text")
		if !model.Exists() || !response.Exists() {
			// Not a benchmark record.
			continue
		}

		ms, ok := counts[model.String()]
		if !ok {
			ms = &output.ModelSummary{Model: model.String()}
			counts[model.String()] = ms
			order = append(order, model.String())
		}
		ms.Records++
		total++
		if strings.HasPrefix(response.String(), "ERROR") {
			ms.Errors++
			totalErrors++
		}
	}
	if err := scanner.Err(); err != nil {
		return outputErrorCommon(globals, "READ_ERROR", fmt.Sprintf("error reading file: %s", err))
	}
	if total == 0 {
		return outputErrorCommon(globals, "NO_RECORDS", "no benchmark records found in file")
	}

	models := make([]output.ModelSummary, 0, len(order))
	for _, name := range order {
		models = append(models, *counts[name])
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRunSummary(&output.RunSummary{
			Path:   c.File,
			Total:  total,
			Errors: totalErrors,
			Models: models,
		})
	}

	fmt.Fprintln(globals.Stdout, output.Styles.Header.Render("Run summary: "+c.File))
	table := tablewriter.NewTable(globals.Stdout)
	table.Header("Model", "Records", "Errors")
	for _, ms := range models {
		if err := table.Append(ms.Model, strconv.Itoa(ms.Records), strconv.Itoa(ms.Errors)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	totals := output.Styles.Label.Render("Total: ") + output.Styles.Value.Render(strconv.Itoa(total))
	if totalErrors > 0 {
		totals += "  " + output.Styles.Warning.Render("Errors: "+strconv.Itoa(totalErrors))
	} else {
		totals += "  " + output.Styles.Label.Render("Errors: ") + output.Styles.Value.Render("0")
	}
	fmt.Fprintln(globals.Stdout, totals)
	return nil
}
