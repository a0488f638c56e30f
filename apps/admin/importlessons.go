package main

import (
	"context"
	"fmt"
	"os"

	"github.com/playlearnspark/backend/core/content"
)

// importLessons ingests a lesson spreadsheet. Bad rows are skipped and
// reported, they never abort the run.
func (cli *commandLine) importLessons(path, sheet string, withHeader bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := content.ImportOptions{SheetName: sheet, SkipHeader: withHeader}
	res, err := cli.contentSvc.ImportLessons(context.Background(), f, opts, "admin-cli")
	if err != nil {
		return err
	}

	fmt.Printf("processed %d rows: %d created, %d updated, %d skipped\n",
		res.TotalProcessed, res.Created, res.Updated, res.Skipped)
	for _, rowErr := range res.Errors {
		fmt.Println("  " + rowErr)
	}
	return nil
}
