package manager

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"gopkg.in/yaml.v3"
)

// GetRegisteredDataSets reads every data source manifest under directory.
// Relative sources are resolved against the directory of the manifest that names them.
func GetRegisteredDataSets(directory string) ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			extension := filepath.Ext(path)
			if extension != ".yaml" && extension != ".yml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading data source manifest")

			manifestYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(manifestYaml))

			for {
				var datasource datasets.DataSource
				err := decoder.Decode(&datasource)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}

				for _, dataset := range datasource.Flatten() {
					if dataset.Source != "" && !filepath.IsAbs(dataset.Source) {
						dataset.Source = filepath.Join(filepath.Dir(path), dataset.Source)
					}

					registeredDatasets = append(registeredDatasets, dataset)
				}
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return registeredDatasets, nil
}
