package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/paulr25/bp-tracker/cmd/cli/config"
	"github.com/paulr25/bp-tracker/cmd/cli/root"
	"github.com/spf13/cobra"
)

const tokenFileName = ".bp_token"

// ==========================
// CLI Command Init
// ==========================
func init() {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage users and authentication",
		Long: `Register or login a user to the blood pressure tracker API.
Stores JWT token locally for future commands.`,
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  "Register a new user with username and password.",
		RunE:  runRegister,
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Login an existing user",
		Long:  "Login and save JWT token locally for future CLI commands.",
		RunE:  runLogin,
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove locally saved JWT token.",
		RunE:  runLogout,
	}

	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
	root.GetRoot().AddCommand(authCmd)
}

// ==========================
// Register User
// ==========================
func runRegister(cmd *cobra.Command, args []string) error {
	username, password := promptCredentials()

	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	fmt.Println("User registered successfully! You can now login.")
	return nil
}

// ==========================
// Login User
// ==========================
func runLogin(cmd *cobra.Command, args []string) error {
	username, password := promptCredentials()

	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	if result.Token == "" {
		return fmt.Errorf("token not returned by API")
	}

	if err := saveToken(result.Token); err != nil {
		return err
	}

	fmt.Println("Login successful! JWT token saved locally.")
	return nil
}

// ==========================
// Logout User
// ==========================
func runLogout(cmd *cobra.Command, args []string) error {
	path := tokenPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No user logged in.")
		return nil
	}

	if err := os.Remove(path); err != nil {
		return err
	}

	fmt.Println("Logged out successfully.")
	return nil
}

func promptCredentials() (username, password string) {
	fmt.Print("Username: ")
	fmt.Scanln(&username)
	fmt.Print("Password: ")
	fmt.Scanln(&password)
	return username, password
}

// ==========================
// Token Storage Helpers
// ==========================
func saveToken(token string) error {
	path := tokenPath()
	return os.WriteFile(path, []byte(token), 0600)
}

func LoadToken() (string, error) {
	path := tokenPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
