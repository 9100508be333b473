package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bookworm-labs/book-review-hub/cli/config"
	"github.com/spf13/cobra"
)

var (
	listPage   int
	listSearch string
	listSort   string

	addTitle       string
	addAuthor      string
	addDescription string
	addGenre       string
	addYear        int
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Book catalog commands",
	Long:  `List, search, inspect, and add books.`,
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	Long:  `List books with average ratings. Supports --search, --sort (year|rating) and --page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: bookhub init")
			return err
		}

		pageSize := 5
		if config.GlobalConfig != nil && config.GlobalConfig.Output.PageSize > 0 {
			pageSize = config.GlobalConfig.Output.PageSize
		}

		params := url.Values{}
		params.Set("page", fmt.Sprintf("%d", listPage))
		params.Set("limit", fmt.Sprintf("%d", pageSize))
		if listSearch != "" {
			params.Set("search", listSearch)
		}
		if listSort != "" {
			params.Set("sort", listSort)
		}

		resp, err := http.Get(serverURL + "/books?" + params.Encode())
		if err != nil {
			printError("Listing failed: Server connection error")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusOK {
			var errResp map[string]string
			json.Unmarshal(body, &errResp)
			printError(fmt.Sprintf("Listing failed: %s", errResp["error"]))
			return fmt.Errorf("listing failed")
		}

		var page struct {
			Books []struct {
				ID            string  `json:"id"`
				Title         string  `json:"title"`
				Author        string  `json:"author"`
				Genre         string  `json:"genre"`
				Year          int     `json:"year"`
				AverageRating float64 `json:"averageRating"`
			} `json:"books"`
			TotalPages int `json:"totalPages"`
		}
		json.Unmarshal(body, &page)

		if len(page.Books) == 0 {
			fmt.Println("No books found.")
			return nil
		}

		for i, b := range page.Books {
			fmt.Printf("%d. %s — %s\n", i+1, b.Title, b.Author)
			fmt.Printf("   ID: %s\n", b.ID)
			if b.Genre != "" {
				fmt.Printf("   Genre: %s\n", b.Genre)
			}
			if b.Year != 0 {
				fmt.Printf("   Year: %d\n", b.Year)
			}
			fmt.Printf("   Rating: %.1f\n", b.AverageRating)
			fmt.Println()
		}
		fmt.Printf("Page %d of %d\n", listPage, page.TotalPages)
		if listSort == "rating" {
			fmt.Println("Note: rating order applies within this page only.")
		}

		return nil
	},
}

var booksShowCmd = &cobra.Command{
	Use:   "show [book-id]",
	Short: "Show a book with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: bookhub init")
			return err
		}

		resp, err := http.Get(serverURL + "/books/" + url.PathEscape(args[0]))
		if err != nil {
			printError("Fetch failed: Server connection error")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusOK {
			var errResp map[string]string
			json.Unmarshal(body, &errResp)
			printError(fmt.Sprintf("Fetch failed: %s", errResp["error"]))
			return fmt.Errorf("fetch failed")
		}

		var detail struct {
			Title         string  `json:"title"`
			Author        string  `json:"author"`
			Description   string  `json:"description"`
			Genre         string  `json:"genre"`
			Year          int     `json:"year"`
			AverageRating float64 `json:"averageRating"`
			Reviews       []struct {
				Username   string `json:"username"`
				Rating     int    `json:"rating"`
				ReviewText string `json:"reviewText"`
			} `json:"reviews"`
		}
		json.Unmarshal(body, &detail)

		fmt.Printf("%s — %s\n", detail.Title, detail.Author)
		if detail.Year != 0 {
			fmt.Printf("Year: %d\n", detail.Year)
		}
		if detail.Genre != "" {
			fmt.Printf("Genre: %s\n", detail.Genre)
		}
		if detail.Description != "" {
			fmt.Printf("\n%s\n", detail.Description)
		}
		fmt.Printf("\nAverage rating: %.1f (%d reviews)\n", detail.AverageRating, len(detail.Reviews))
		for _, r := range detail.Reviews {
			fmt.Printf("  [%d/5] %s: %s\n", r.Rating, r.Username, r.ReviewText)
		}

		return nil
	},
}

var booksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Long:  `Add a book. Requires a logged-in session (bookhub auth login).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addTitle == "" {
			return fmt.Errorf("title is required (--title)")
		}
		if addAuthor == "" {
			return fmt.Errorf("author is required (--author)")
		}

		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: bookhub init")
			return err
		}

		token, err := config.GetToken()
		if err != nil {
			printError("You are not logged in")
			fmt.Println("Run: bookhub auth login --username <name>")
			return err
		}

		reqBody := map[string]interface{}{
			"title":       addTitle,
			"author":      addAuthor,
			"description": addDescription,
			"genre":       addGenre,
			"year":        addYear,
		}
		jsonData, _ := json.Marshal(reqBody)

		req, err := http.NewRequest(http.MethodPost, serverURL+"/books", bytes.NewBuffer(jsonData))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			printError("Add failed: Server connection error")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusCreated {
			var errResp map[string]string
			json.Unmarshal(body, &errResp)
			printError(fmt.Sprintf("Add failed: %s", errResp["error"]))
			return fmt.Errorf("add failed")
		}

		var created struct {
			ID string `json:"id"`
		}
		json.Unmarshal(body, &created)

		printSuccess("Book added!")
		fmt.Printf("ID: %s\n", created.ID)
		return nil
	},
}

func init() {
	booksListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	booksListCmd.Flags().StringVar(&listSearch, "search", "", "search term (title or author)")
	booksListCmd.Flags().StringVar(&listSort, "sort", "", "sort key: year or rating")

	booksAddCmd.Flags().StringVar(&addTitle, "title", "", "book title")
	booksAddCmd.Flags().StringVar(&addAuthor, "author", "", "book author")
	booksAddCmd.Flags().StringVar(&addDescription, "description", "", "book description")
	booksAddCmd.Flags().StringVar(&addGenre, "genre", "", "book genre")
	booksAddCmd.Flags().IntVar(&addYear, "year", 0, "publication year")

	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksShowCmd)
	booksCmd.AddCommand(booksAddCmd)
}
