package directory

import "context"

// DirectoryRepository fetches the personnel sheet.
type DirectoryRepository interface {
	// FetchDirectory downloads and parses the published CSV. It never fails
	// outright: when every transport attempt fails or the body is not tabular,
	// it returns the built-in sample directory with SourceSample.
	FetchDirectory(ctx context.Context) ([]Person, Source, error)
}
