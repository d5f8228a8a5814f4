// Package facebook talks to the Meta Graph API: conversion events for
// the pixel and auto-posts on the shop's page. Every call is
// best-effort; failures are logged and swallowed so a marketing outage
// can never fail a sale.
package facebook

import (
	"fmt"
	"log"
	"time"

	"github.com/parnurzeal/gorequest"
)

const (
	graphBase  = "https://graph.facebook.com"
	apiVersion = "v19.0"
)

// Config holds the Graph API credentials. Any missing credential
// disables the corresponding capability.
type Config struct {
	PixelID     string
	PageID      string
	AccessToken string
}

// Client is a fire-and-forget Graph API client.
type Client struct {
	cfg     Config
	timeout time.Duration
}

// NewClient creates a new Client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, timeout: 10 * time.Second}
}

// SendEvent posts a conversion event to the pixel's events endpoint.
func (c *Client) SendEvent(eventName string, customData map[string]interface{}) {
	if c.cfg.PixelID == "" || c.cfg.AccessToken == "" {
		log.Printf("meta capi disabled (missing credentials), event %q skipped", eventName)
		return
	}

	url := fmt.Sprintf("%s/%s/%s/events", graphBase, apiVersion, c.cfg.PixelID)
	payload := map[string]interface{}{
		"data": []map[string]interface{}{{
			"event_name":    eventName,
			"event_time":    time.Now().Unix(),
			"action_source": "website",
			"user_data":     map[string]string{"client_user_agent": "maison-backend"},
			"custom_data":   customData,
		}},
		"access_token": c.cfg.AccessToken,
	}

	resp, body, errs := gorequest.New().Timeout(c.timeout).Post(url).Send(payload).End()
	if len(errs) > 0 {
		log.Printf("meta capi: event %q failed: %v", eventName, errs)
		return
	}
	if resp.StatusCode != 200 {
		log.Printf("meta capi: event %q rejected: %d - %s", eventName, resp.StatusCode, body)
		return
	}
	log.Printf("meta capi: event %q sent", eventName)
}

// PostProduct publishes a new-product announcement on the page. When
// the image URL is publicly reachable it goes out as a photo post;
// a local path falls back to a text-only post, since the Graph API
// cannot fetch an image it cannot reach.
func (c *Client) PostProduct(name, description, imageURL string, price float64) {
	if c.cfg.PageID == "" || c.cfg.AccessToken == "" {
		log.Printf("facebook auto-post disabled (missing credentials), product %q skipped", name)
		return
	}

	message := buildProductMessage(name, description, price)

	url := fmt.Sprintf("%s/%s/%s/feed", graphBase, apiVersion, c.cfg.PageID)
	payload := map[string]string{
		"message":      message,
		"access_token": c.cfg.AccessToken,
	}
	if publiclyReachable(imageURL) {
		url = fmt.Sprintf("%s/%s/%s/photos", graphBase, apiVersion, c.cfg.PageID)
		payload["url"] = imageURL
	} else if imageURL != "" {
		log.Printf("facebook auto-post: image URL %q is not public, posting text only", imageURL)
	}

	resp, body, errs := gorequest.New().Timeout(c.timeout).Post(url).Type("form").Send(payload).End()
	if len(errs) > 0 {
		log.Printf("facebook auto-post: product %q failed: %v", name, errs)
		return
	}
	if resp.StatusCode != 200 {
		log.Printf("facebook auto-post: product %q rejected: %d - %s", name, resp.StatusCode, body)
		return
	}
	log.Printf("facebook auto-post: product %q published", name)
}

// publiclyReachable is a cheap heuristic: the Graph API fetches image
// URLs itself, so anything that is not an absolute http(s) URL is
// unusable for a photo post.
func publiclyReachable(imageURL string) bool {
	return len(imageURL) >= 4 && imageURL[:4] == "http"
}

func buildProductMessage(name, description string, price float64) string {
	if len(description) > 200 {
		description = description[:200] + "..."
	}
	return fmt.Sprintf("New Arrival!\n\n%s\n%s\n\nPrice: %.2f AED\n\nShop now!", name, description, price)
}
