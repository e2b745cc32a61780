package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Field orders are fixed; downstream sheets index by position.
var (
	escalationFields   = []string{"id", "created_at", "rating", "user_messages"}
	conversationFields = []string{"id", "created_at", "rating", "full_conversation"}
)

func escalationsFileName(date string) string {
	return fmt.Sprintf("fin_escalations_%s.csv", date)
}

func conversationsFileName(date string) string {
	return fmt.Sprintf("fin_conversations_%s.csv", date)
}

// writeRowsCSV writes a header plus one record per row. Transcripts contain
// embedded newlines; encoding/csv quotes them.
func writeRowsCSV(path string, header []string, rows []ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %v", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("error writing header to %s: %v", path, err)
	}
	for _, row := range rows {
		rating := ""
		if row.Rating != nil {
			rating = strconv.Itoa(*row.Rating)
		}
		if err := w.Write([]string{row.ID, row.CreatedAt, rating, row.Text}); err != nil {
			f.Close()
			return fmt.Errorf("error writing row to %s: %v", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("error flushing %s: %v", path, err)
	}
	return f.Close()
}
