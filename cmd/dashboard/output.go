package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

func outputResult(w io.Writer, result any, format string) error {
	switch format {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		return outputYAML(w, result)
	case "table", "":
		return outputTable(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func outputJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func outputTable(out io.Writer, result any) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case SummaryResult:
		return outputSummaryTable(w, r)
	case ListResult:
		return outputListTable(w, r)
	default:
		return outputJSON(out, result)
	}
}

func outputSummaryTable(w *tabwriter.Writer, r SummaryResult) error {
	fmt.Fprintf(w, "TOTAL JOBS\t%d\n", r.TotalJobs)
	fmt.Fprintf(w, "TOTAL CONTACTS\t%d\n", r.TotalContacts)
	fmt.Fprintf(w, "SUCCESS RATE\t%.1f%%\n", r.SuccessRate)
	fmt.Fprintf(w, "AVG DURATION\t%.1f min\n\n", r.AvgDurationMinutes)

	fmt.Fprintln(w, "STATUS\tJOBS")
	for _, s := range r.Statuses {
		fmt.Fprintf(w, "%s\t%d\n", s.Status, s.Count)
	}
	return nil
}

func outputListTable(w *tabwriter.Writer, r ListResult) error {
	fmt.Fprintf(w, "TIMEZONE\t%s\n", r.Timezone)
	fmt.Fprintf(w, "JOBS\t%d\n\n", len(r.Jobs))

	fmt.Fprintln(w, "CREATED\tUPDATED\tWORKSPACE\tSIZE\tTYPE\tCONTACTS\tSTATUS")
	for _, j := range r.Jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			j.CreatedAt, j.UpdatedAt, j.Workspace, j.SizeCategory, j.ContactType, j.TotalContacts, j.Status)
	}
	return nil
}
