package datasets

import "fmt"

// DataSource groups the datasets published by one provider
type DataSource struct {
	Identifier string    `yaml:"identifier"`
	Provider   Provider  `yaml:"provider"`
	Datasets   []DataSet `yaml:"datasets"`
}

// Flatten prefixes every dataset identifier with the source identifier
func (d DataSource) Flatten() []DataSet {
	flattened := make([]DataSet, 0, len(d.Datasets))

	for _, dataset := range d.Datasets {
		if d.Identifier != "" {
			dataset.Identifier = fmt.Sprintf("%s-%s", d.Identifier, dataset.Identifier)
		}
		dataset.Provider = d.Provider

		flattened = append(flattened, dataset)
	}

	return flattened
}
