package datasets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed datasets.yaml
var registryYaml []byte

// GetRegisteredDataSets flattens every datasource document in the embedded
// registry into a single dataset list. Dataset identifiers are prefixed with
// their datasource identifier.
func GetRegisteredDataSets() []DataSet {
	var registeredDatasets []DataSet

	decoder := yaml.NewDecoder(bytes.NewReader(registryYaml))

	for {
		var datasource DataSource
		if decoder.Decode(&datasource) != nil {
			break
		}

		for _, dataset := range datasource.Datasets {
			dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
			dataset.DataSourceRef = datasource.Identifier
			dataset.Provider = datasource.Provider

			registeredDatasets = append(registeredDatasets, dataset)
		}
	}

	return registeredDatasets
}

func GetDataSet(identifier string) (DataSet, error) {
	for _, dataset := range GetRegisteredDataSets() {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return DataSet{}, errors.New("dataset could not be found")
}
