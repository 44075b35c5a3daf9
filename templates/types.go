package templates

// HeaderData is shown in the top bar of every full page.
type HeaderData struct {
	AppName  string
	Currency string
}

// SidebarData drives the navigation menu and its counters.
type SidebarData struct {
	ActivePath    string
	ProjectCount  int
	EstimateCount int
	DraftCount    int
}

// Column is a toggleable list column.
type Column struct {
	Key   string
	Label string
}

// Pager describes one page of a list for the pager footer.
type Pager struct {
	Page       int
	TotalPages int
	From       int
	To         int
	Total      int
	PrevURL    string
	NextURL    string
	Target     string
}

// StatusCount is one tile on the dashboard.
type StatusCount struct {
	Status     string
	Count      int
	BadgeClass string
}

type DashboardData struct {
	ProjectCount  int
	EstimateCount int
	OpenDrafts    int
	GrandTotal    string
	StatusCounts  []StatusCount
	Recent        []EstimateRow
}

// EstimateRow is one line of the estimate list.
type EstimateRow struct {
	ID         string
	Version    string
	Project    string
	Client     string
	Created    string
	Modified   string
	Status     string
	BadgeClass string
	Total      string
}

type EstimateListData struct {
	Rows     []EstimateRow
	Search   string
	Status   string
	From     string
	To       string
	Statuses []string
	Columns  []Column
	Hidden   map[string]bool
	Pager    Pager
}

// EditorItem is one editable line item. Err* hold validation messages.
type EditorItem struct {
	ID          int64
	Title       string
	Description string
	Unit        string
	Quantity    string
	Price       string
	Margin      string
	Total       string
	TitleErr    string
	QuantityErr string
	PriceErr    string
}

type EditorSection struct {
	ID       int64
	Title    string
	TitleErr string
	Expanded bool
	Subtotal string
	Items    []EditorItem
}

// ImportSummary reports the outcome of a line-item upload in the editor.
type ImportSummary struct {
	FileName     string
	Total        int
	Imported     int
	ErrorRows    int
	Errors       []ImportErrorRow
	ErrorsJSON   string
	Unrecognized []string
}

type ImportErrorRow struct {
	Row     int
	Field   string
	Message string
}

type EditorData struct {
	Token      string
	ID         string
	IsNew      bool
	Version    string
	Project    string
	Client     string
	Status     string
	ProjectErr string
	ClientErr  string
	StatusErr  string
	Statuses   []string
	Units      []string
	Projects   []string
	Sections   []EditorSection
	SubTotal   string
	Margin     string
	Total      string
	ErrorCount int
	State      string
	Import     *ImportSummary
}

type ViewItem struct {
	Index       string
	Title       string
	Description string
	Unit        string
	Quantity    string
	Price       string
	Margin      string
	Total       string
}

type ViewSection struct {
	Index    string
	Title    string
	Subtotal string
	Items    []ViewItem
}

type EstimateViewData struct {
	ID         string
	Version    string
	Project    string
	Client     string
	Status     string
	BadgeClass string
	Created    string
	Modified   string
	Sections   []ViewSection
	SubTotal   string
	Margin     string
	Total      string
}

// ProjectListItem is one row of the projects table.
type ProjectListItem struct {
	ID            string
	Customer      string
	Reference     string
	ProjectName   string
	ProjectNumber string
	Location      string
	Status        string
	BadgeClass    string
	Created       string
}

type ProjectListData struct {
	Items    []ProjectListItem
	Search   string
	Status   string
	Statuses []string
	Columns  []Column
	Hidden   map[string]bool
	Pager    Pager
}

// ProjectFormField is one labelled input of the project form.
type ProjectFormField struct {
	Name  string
	Label string
	Type  string
}

type ProjectFormData struct {
	ID       string
	Fields   []ProjectFormField
	Values   map[string]string
	Errors   map[string]string
	Statuses []string
}

// LabeledValue is a read-only field on a detail page.
type LabeledValue struct {
	Label string
	Value string
}

type ProjectViewData struct {
	ID          string
	ProjectName string
	Status      string
	BadgeClass  string
	Fields      []LabeledValue
	Estimates   []EstimateRow
}
