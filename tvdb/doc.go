// Package tvdb provides a client for the TheTVDB v3 REST API.
//
// Only the operations needed to print an episode listing are implemented:
// login, series search, series lookup and the paginated episode listing.
//
// # Usage
//
// NewClient exchanges the API key for a session token once. The returned
// client attaches that token to every request and is safe to reuse:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tvdb.NewClient(ctx, "your-api-key", logger,
//		tvdb.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	matches, err := client.SearchSeries(ctx, tvdb.SearchParams{Name: "Firefly", Language: "en"})
//	episodes, err := client.GetSeriesEpisodes(ctx, matches[0].ID)
//
// # Error Handling
//
//   - ErrInvalidAPIKey: the login endpoint rejected the key
//   - HTTPError: any other non-200 response
//   - DecodeError: a 200 response whose body did not match the expected shape
//   - TransportError: the request never produced a response
//   - ErrTooManyPages, ErrCursorNotProgressing: the episode cursor did not terminate
//
// The token is never refreshed; an expired session surfaces as an HTTPError.
package tvdb
