package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/database"
	"github.com/sysdevrun/transitchat/pkg/dataimporter/datasets"
	"github.com/sysdevrun/transitchat/pkg/dataimporter/gtfs"
)

// ImportDataSet downloads (or opens) the dataset source and loads it into the
// database, replacing whatever was imported before.
func ImportDataSet(ctx context.Context, db *database.Instance, dataset *datasets.DataSet) error {
	if dataset.Format != datasets.DataSetFormatGTFSSchedule {
		return fmt.Errorf("unrecognised dataset format %s", dataset.Format)
	}

	log.Info().
		Str("dataset", dataset.Identifier).
		Str("source", dataset.Source).
		Msg("Importing dataset")

	source := dataset.Source
	if isValidURL(source) {
		tempFile, err := tempDownloadFile(ctx, source)
		if err != nil {
			return err
		}
		defer os.Remove(tempFile.Name())

		source = tempFile.Name()
	}

	return ImportFile(ctx, db, source)
}

// ImportFile loads a GTFS Schedule zip bundle from the local filesystem.
func ImportFile(ctx context.Context, db *database.Instance, path string) error {
	schedule, err := gtfs.ParseZip(path)
	if err != nil {
		return err
	}

	schedule.LogSummary()

	return schedule.ImportIntoDatabase(ctx, db)
}

func isValidURL(toTest string) bool {
	u, err := url.Parse(toTest)

	return err == nil && u.Scheme != "" && u.Host != ""
}

func tempDownloadFile(ctx context.Context, source string) (*os.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("user-agent", "curl/7.54.1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	tmpFile, err := os.CreateTemp(os.TempDir(), "transitchat-data-importer-")
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return nil, err
	}

	return tmpFile, nil
}
