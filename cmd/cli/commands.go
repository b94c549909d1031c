package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rendezvous_server/models"

	"github.com/spf13/cobra"
)

var (
	profileName   string
	profileAge    int
	profileGender string
	profileBio    string
	notifyLimit   int
)

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileCmd.Flags().IntVar(&profileAge, "age", 0, "Age")
	profileCmd.Flags().StringVar(&profileGender, "gender", "", "Gender")
	profileCmd.Flags().StringVar(&profileBio, "bio", "", "Short bio")
	_ = profileCmd.MarkFlagRequired("name")
	notificationsCmd.Flags().IntVar(&notifyLimit, "limit", 0, "Maximum number of notifications")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(unlikeCmd)
	rootCmd.AddCommand(likedMeCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(appointmentsCmd)
	rootCmd.AddCommand(statusCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/api/profiles/me", models.ProfileFields{
			Name:   profileName,
			Age:    profileAge,
			Gender: profileGender,
			Bio:    profileBio,
		})
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles [id]",
	Short: "List profiles, or show one profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performRequest(http.MethodGet, "/api/profiles/"+url.PathEscape(args[0]), nil)
		}
		return performRequest(http.MethodGet, "/api/profiles", nil)
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/profiles/"+url.PathEscape(args[0])+"/like", nil)
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <id>",
	Short: "Withdraw a like",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/api/profiles/"+url.PathEscape(args[0])+"/like", nil)
	},
}

var likedMeCmd = &cobra.Command{
	Use:   "liked-me",
	Short: "List the parties who liked you",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/match/liked-me", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List your matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/match/matches", nil)
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List your newest notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/notifications"
		if notifyLimit > 0 {
			endpoint += "?limit=" + strconv.Itoa(notifyLimit)
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var submitCmd = &cobra.Command{
	Use:     "submit <counterpart-id> <slot>...",
	Short:   "Submit your availability for a match",
	Example: "rendezvous-cli --as alice submit bob 2024-06-01@18:00-20:00 2024-06-02@12:00-13:30",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slots := make([]models.TimeSlot, 0, len(args)-1)
		for _, arg := range args[1:] {
			slot, err := parseSlot(arg)
			if err != nil {
				return err
			}
			slots = append(slots, slot)
		}
		return performRequest(http.MethodPost, "/api/schedule/availability", map[string]interface{}{
			"counterpartId": args[0],
			"slots":         slots,
		})
	},
}

var confirmCmd = &cobra.Command{
	Use:     "confirm <counterpart-id> <slot>",
	Short:   "Confirm a proposed date",
	Example: "rendezvous-cli --as bob confirm alice 2024-06-01@19:00-20:00",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[1])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/api/schedule/confirm", map[string]interface{}{
			"counterpartId": args[0],
			"slot":          slot,
		})
	},
}

var appointmentsCmd = &cobra.Command{
	Use:   "appointments",
	Short: "List your scheduled dates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/schedule/appointments", nil)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <counterpart-id>",
	Short: "Show the scheduling status with a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/schedule/status/"+url.PathEscape(args[0]), nil)
	},
}

// parseSlot reads a slot written as DATE@START-END, e.g. 2024-06-01@18:00-20:00.
func parseSlot(arg string) (models.TimeSlot, error) {
	date, window, ok := strings.Cut(arg, "@")
	if !ok {
		return models.TimeSlot{}, fmt.Errorf("slot %q must look like 2024-06-01@18:00-20:00", arg)
	}
	start, end, ok := strings.Cut(window, "-")
	if !ok {
		return models.TimeSlot{}, fmt.Errorf("slot %q must look like 2024-06-01@18:00-20:00", arg)
	}
	slot := models.TimeSlot{Date: date, StartTime: start, EndTime: end}
	if err := slot.Validate(); err != nil {
		return models.TimeSlot{}, fmt.Errorf("slot %q: %w", arg, err)
	}
	return slot, nil
}

func newRequest(method, endpoint string, payload interface{}) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, host+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.HasPrefix(endpoint, "/api/") {
		if partyID == "" {
			return nil, fmt.Errorf("--as is required for %s", endpoint)
		}
		req.Header.Set("X-Party-ID", partyID)
	}
	return req, nil
}

func performRequest(method, endpoint string, payload interface{}) error {
	req, err := newRequest(method, endpoint, payload)
	if err != nil {
		return err
	}
	fmt.Printf("Making %s request to %s\n", method, req.URL)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
