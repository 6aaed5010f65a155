// Package roadsight is the Go client for the Roadsight footage search
// API. It owns the whole search round trip: query validation, transport
// with retry, backoff and a circuit breaker, optional demo-mode fallback
// to the built-in sample dataset, and normalization of results for
// display.
//
// The Client is safe for concurrent use from multiple goroutines.
//
// Basic usage:
//
//	client, err := roadsight.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	q, err := roadsight.NewTextQuery("cars turning left", roadsight.WithLimit(5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Search(ctx, q)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if resp.DemoMode {
//	    fmt.Println("warning: backend unreachable, showing sample data")
//	}
//	for _, r := range resp.Results {
//	    fmt.Println(r.VideoFilename, r.FormattedTimestamp, r.ConfidenceLabel)
//	}
package roadsight

// Version is the client library version.
const Version = "0.3.0"

const userAgent = "roadsight-go/" + Version
