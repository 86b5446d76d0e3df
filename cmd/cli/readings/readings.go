package readings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/paulr25/bp-tracker/cmd/cli/auth"
	"github.com/paulr25/bp-tracker/cmd/cli/config"
	"github.com/paulr25/bp-tracker/cmd/cli/output"
	"github.com/paulr25/bp-tracker/cmd/cli/root"
	"github.com/spf13/cobra"
)

func init() {
	readingsCmd := &cobra.Command{
		Use:   "readings",
		Short: "Manage blood pressure readings",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your readings, most recent first",
		RunE:  runList,
	}

	addCmd := &cobra.Command{
		Use:   "add <systolic> <diastolic> <timestamp>",
		Short: "Record a reading",
		Long:  "Record a reading. Timestamp format is YYYY-MM-DDTHH:MM, e.g. 2024-02-05T14:30.",
		Args:  cobra.ExactArgs(3),
		RunE:  runAdd,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your readings",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	readingsCmd.AddCommand(listCmd, addCmd, deleteCmd)
	root.GetRoot().AddCommand(readingsCmd)
}

type readingRow struct {
	ID        int    `json:"id"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Timestamp string `json:"timestamp"`
}

func runList(cmd *cobra.Command, args []string) error {
	resp, err := apiRequest("GET", "/api/readings", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var list []readingRow
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(list))
	for _, r := range list {
		rows = append(rows, []interface{}{r.ID, r.Systolic, r.Diastolic, r.Timestamp})
	}
	output.RenderTable([]string{"ID", "Systolic", "Diastolic", "Taken at"}, rows)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	systolic, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("systolic must be an integer: %q", args[0])
	}
	diastolic, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("diastolic must be an integer: %q", args[1])
	}

	payload := map[string]interface{}{
		"systolic":  systolic,
		"diastolic": diastolic,
		"timestamp": args[2],
	}
	body, _ := json.Marshal(payload)
	resp, err := apiRequest("POST", "/api/readings", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Reading readingRow `json:"reading"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	fmt.Printf("Recorded reading %d: %d/%d at %s\n",
		result.Reading.ID, result.Reading.Systolic, result.Reading.Diastolic, result.Reading.Timestamp)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	resp, err := apiRequest("DELETE", "/api/readings/"+args[0], nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	fmt.Println("Reading deleted.")
	return nil
}

// apiRequest performs an authenticated request against the API.
func apiRequest(method, path string, body io.Reader) (*http.Response, error) {
	token, err := auth.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("not logged in (run `bp auth login` first): %w", err)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return http.DefaultClient.Do(req)
}
