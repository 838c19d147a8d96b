package sheets

import (
	"context"
	"fmt"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"tournament-entry/internal/models"
)

func (c *Client) readRange(ctx context.Context, a1 string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, c.sheet+"!"+a1).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, c.sheet+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (c *Client) updateRow(ctx context.Context, a1 string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, c.sheet+"!"+a1, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// EnsureHeader writes the column names into row 1 when the sheet is empty.
func (c *Client) EnsureHeader(ctx context.Context) error {
	values, err := c.readRange(ctx, "A1:Z1")
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(values) > 0 && len(values[0]) > 0 {
		return nil
	}
	header := models.RowHeader()
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	return c.updateRow(ctx, "A1", row)
}

// Record appends one paid entry as a new row.
func (c *Client) Record(ctx context.Context, rec models.ForwardedRecord) error {
	if err := c.appendRow(ctx, rec.Row()); err != nil {
		return fmt.Errorf("append entry row: %w", err)
	}
	return nil
}
