package models

type DatasetSummary struct {
	Name    string   `json:"name"`
	Rows    int64    `json:"rows"`
	Columns []string `json:"columns"`
}

type IndexResponse struct {
	Backend  string           `json:"backend"`
	Datasets []DatasetSummary `json:"datasets"`
}

type ColumnDoc struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Doc  string `json:"doc"`
}

type DatasetDetail struct {
	DatasetSummary
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Source      string      `json:"source,omitempty"`
	ColumnDocs  []ColumnDoc `json:"column_docs,omitempty"`
}

type RowsResponse struct {
	Data   []map[string]interface{} `json:"data"`
	Total  int64                    `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}
