// Package omdb provides a movie.Searcher backed by the OMDb API.
//
// OMDb answers title searches with a flat JSON document whose "Response"
// field is the string "True" or "False". A "False" response carries a
// human-readable "Error" message, which this client surfaces verbatim.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := omdb.NewClient("your-api-key", logger,
//		omdb.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.Search(ctx, "blade runner", 1)
//	if err != nil {
//		// err.Error() is safe to show to the user
//	}
//
// # Error Handling
//
// All failures are *movie.SearchError values:
//
//   - movie.ErrRequestFailed: transport errors, undecodable bodies, and
//     non-2xx statuses without an OMDb payload
//   - movie.ErrAPI: OMDb returned Response "False"
package omdb
