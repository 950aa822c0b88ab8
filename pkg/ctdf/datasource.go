package ctdf

type DataSource struct {
	OriginalFormat string `groups:"detailed"`
	Dataset        string `groups:"detailed"`
	Line           int    `groups:"detailed" json:",omitempty"`
}
