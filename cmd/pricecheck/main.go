package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
)

// pricecheck is a small operational client for a running wisebricks
// instance: look up one set's review data or list current price drops.

type reviewResponse struct {
	Set struct {
		SetNumber string   `json:"set_number"`
		Title     string   `json:"title"`
		Theme     *string  `json:"theme"`
		RRPGBP    *float64 `json:"rrp_gbp"`
	} `json:"set"`
	Snapshot struct {
		RetailerCount int      `json:"retailer_count"`
		Lowest        *float64 `json:"lowest_current_price_gbp"`
		Highest       *float64 `json:"highest_current_price_gbp"`
	} `json:"snapshot"`
	History struct {
		Mode   string `json:"mode"`
		Points []struct {
			WeekStart   string  `json:"week_start"`
			AvgPriceGBP float64 `json:"avg_price_gbp"`
		} `json:"points"`
	} `json:"history"`
	Comparables struct {
		Mode    string `json:"mode"`
		Results []struct {
			SetNumber string   `json:"set_number"`
			Title     string   `json:"title"`
			RRPGBP    *float64 `json:"rrp_gbp"`
		} `json:"results"`
	} `json:"comparables"`
}

type dropsResponse struct {
	Mode string `json:"mode"`
	Rows []struct {
		SetNumber string   `json:"set_number"`
		Title     string   `json:"title"`
		Retailer  *string  `json:"retailer"`
		NowPrice  *float64 `json:"now_price"`
		PrevPrice *float64 `json:"prev_price"`
		ChangePct *float64 `json:"change_pct"`
	} `json:"rows"`
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
	}

	baseURL := os.Getenv("WISEBRICKS_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api/v1"
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	switch os.Args[1] {
	case "set":
		if len(os.Args) < 3 {
			usage()
		}
		showSet(client, os.Args[2])
	case "drops":
		showDrops(client)
	default:
		usage()
	}
}

func showSet(client *resty.Client, setNumber string) {
	var review reviewResponse
	resp, err := client.R().
		SetQueryParam("set", setNumber).
		SetResult(&review).
		Get("/sets/review")
	if err != nil {
		fail("request failed: %v", err)
	}
	if resp.IsError() {
		fail("server returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("%s  %s\n", review.Set.SetNumber, review.Set.Title)
	if review.Set.Theme != nil {
		fmt.Printf("theme: %s\n", *review.Set.Theme)
	}
	fmt.Printf("rrp: %s\n", money(review.Set.RRPGBP))
	fmt.Printf("retailers: %d  lowest: %s  highest: %s\n",
		review.Snapshot.RetailerCount, money(review.Snapshot.Lowest), money(review.Snapshot.Highest))

	if review.History.Mode != "ok" {
		fmt.Printf("history: %s\n", review.History.Mode)
	} else if n := len(review.History.Points); n > 0 {
		last := review.History.Points[n-1]
		fmt.Printf("history: %d weeks, latest avg %.2f (%s)\n", n, last.AvgPriceGBP, last.WeekStart)
	} else {
		fmt.Println("history: no observations")
	}

	if review.Comparables.Mode != "ok" {
		fmt.Printf("comparables: %s\n", review.Comparables.Mode)
		return
	}
	for _, comp := range review.Comparables.Results {
		fmt.Printf("  ~ %s  %s  rrp %s\n", comp.SetNumber, comp.Title, money(comp.RRPGBP))
	}
}

func showDrops(client *resty.Client) {
	var drops dropsResponse
	resp, err := client.R().SetResult(&drops).Get("/price-drops")
	if err != nil {
		fail("request failed: %v", err)
	}
	if resp.IsError() {
		fail("server returned %s: %s", resp.Status(), resp.String())
	}

	fmt.Printf("mode: %s\n", drops.Mode)
	for _, row := range drops.Rows {
		retailer := "-"
		if row.Retailer != nil {
			retailer = *row.Retailer
		}
		change := ""
		if row.ChangePct != nil {
			change = fmt.Sprintf("  %+.1f%%", *row.ChangePct)
		}
		fmt.Printf("  %s  %s  @%s  %s -> %s%s\n",
			row.SetNumber, row.Title, retailer, money(row.PrevPrice), money(row.NowPrice), change)
	}
}

func money(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pricecheck set <set_number> | pricecheck drops")
	os.Exit(2)
}
