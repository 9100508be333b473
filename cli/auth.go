package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"syscall"

	"github.com/bookworm-labs/book-review-hub/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	username string
	email    string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Register, login, and logout commands for Book Review Hub authentication.`,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long:  `Register a new Book Review Hub account with username and email.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if username == "" {
			return fmt.Errorf("username is required (--username)")
		}
		if email == "" {
			return fmt.Errorf("email is required (--email)")
		}

		fmt.Print("Password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password := string(passwordBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password confirmation: %w", err)
		}
		confirmPassword := string(confirmBytes)

		if password != confirmPassword {
			printError("Passwords do not match")
			return fmt.Errorf("passwords do not match")
		}

		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: bookhub init")
			return err
		}

		reqBody := map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		}
		jsonData, _ := json.Marshal(reqBody)

		res, err := http.Post(serverURL+"/auth/register", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			printError("Registration failed: Server connection error")
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)

		if res.StatusCode != http.StatusCreated {
			var errRes map[string]string
			json.Unmarshal(body, &errRes)
			printError(fmt.Sprintf("Registration failed: %s", errRes["error"]))
			return fmt.Errorf("registration failed")
		}

		var authRes struct {
			Token    string `json:"token"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(body, &authRes); err != nil {
			printError("Registration failed: Invalid server response")
			return err
		}

		if err := config.UpdateUserToken(authRes.Username, authRes.Token); err != nil {
			printError("Registered, but failed to save session locally")
			return err
		}

		printSuccess("Account created successfully!")
		fmt.Printf("Logged in as %s\n", authRes.Username)
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your account",
	Long:  `Log in with your username; the session token is stored in ~/.bookhub/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if username == "" {
			return fmt.Errorf("username is required (--username)")
		}

		fmt.Print("Password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: bookhub init")
			return err
		}

		reqBody := map[string]string{
			"username": username,
			"password": string(passwordBytes),
		}
		jsonData, _ := json.Marshal(reqBody)

		res, err := http.Post(serverURL+"/auth/login", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			printError("Login failed: Server connection error")
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)

		if res.StatusCode != http.StatusOK {
			var errResp map[string]string
			json.Unmarshal(body, &errResp)
			printError(fmt.Sprintf("Login failed: %s", errResp["error"]))
			return fmt.Errorf("login failed")
		}

		var authRes struct {
			Token    string `json:"token"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(body, &authRes); err != nil {
			printError("Login failed: Invalid server response")
			return err
		}

		if err := config.UpdateUserToken(authRes.Username, authRes.Token); err != nil {
			printError("Logged in, but failed to save session locally")
			return err
		}

		printSuccess("Login successful!")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Long:  `Clear the stored session token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearUserToken(); err != nil {
			printError("Configuration not found")
			return err
		}
		printSuccess("Logged out successfully!")
		return nil
	},
}

func init() {
	authRegisterCmd.Flags().StringVar(&username, "username", "", "account username")
	authRegisterCmd.Flags().StringVar(&email, "email", "", "account email")
	authLoginCmd.Flags().StringVar(&username, "username", "", "account username")

	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
}
