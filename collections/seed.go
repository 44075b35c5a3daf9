package collections

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"estimatetracker/estimates"
)

// ── Definition structs ───────────────────────────────────────────────────

type projectDef struct {
	customer      string
	refNumber     string
	projectName   string
	projectNumber string
	areaLocation  string
	address       string
	status        string
}

type itemDef struct {
	title    string
	unit     string
	quantity string
	price    string
	margin   string
}

type estimateDef struct {
	version  string
	project  string
	client   string
	created  string // 02 Jan 2006
	modified string // 02-Jan-2006
	status   estimates.Status
}

var seedProjects = []projectDef{
	{"Olivia Martin", "89PQRS6789T1U2V3", "Sarah Williams", "PQRST9012R", "Telangana", "Mumbai, Maharashtra", "Completed"},
	{"Michael Jones", "67KLMN2345P6Q7R8", "Robert Johnson", "ABCDE1234F", "Uttar Pradesh", "Bhiwani, Haryana", "Processing"},
	{"John Doe", "23PQRS4567T8U9V1", "Isabella Anderson", "XYZAB6789C", "Delhi", "Avadi, Tamil Nadu", "Rejected"},
	{"Ella Lewis", "78STUV2346W6X7Y8", "Christopher White", "PQRST9012R", "Karnataka", "North Dum Dum, West Bengal", "On Hold"},
	{"James Rodriguez", "45KLMN8901P2Q3R4", "Jane Smith", "RSTUV9012B", "Andhra Pradesh", "Anantapur, Andhra Pradesh", "In Transit"},
	{"Isabella Anderson", "23PQRS4567T8U9V1", "Olivia Martin", "ABCDE6789Y", "Odisha", "Farrukabad, Uttar Pradesh", "Completed"},
	{"Sarah Williams", "89KLMN6789P1Q2R3", "John Doe", "VWXYZ2345X", "West Bengal", "Vadodara, Gujarat", "Processing"},
	{"Sophia Hernandez", "34FGHI5678I9K1L2", "Mia Taylor", "RSTUV2345W", "Uttar Pradesh", "Loni, Uttar Pradesh", "Completed"},
	{"Sarah Williams", "89PQRS6789T1U2V3", "James Rodriguez", "DEFGH6789D", "Madhya Pradesh", "Bhilwara, Rajasthan", "On Hold"},
	{"Sophia Hernandez", "12ABCDE1234F1Z5", "Robert Johnson", "LMNOP5678V", "Madhya Pradesh", "Raichur, Karnataka", "In Transit"},
	{"David Wilson", "56WXYZ7890A1B2C3", "Emma Davis", "GHIJK3456H", "Tamil Nadu", "Chennai, Tamil Nadu", "Completed"},
	{"Emily Brown", "78MNOP9012D3E4F5", "Alexander Miller", "STUVW7890S", "Gujarat", "Ahmedabad, Gujarat", "Processing"},
	{"Daniel Garcia", "90QRST1234G5H6I7", "Sophia Martinez", "ABCDE2345A", "Rajasthan", "Jaipur, Rajasthan", "Rejected"},
	{"Madison Taylor", "12UVWX3456J7K8L9", "William Anderson", "FGHIJ6789F", "Punjab", "Ludhiana, Punjab", "On Hold"},
	{"Ethan Thomas", "34YZAB5678M9N0O1", "Ava Jackson", "KLMNO9012K", "Haryana", "Gurgaon, Haryana", "In Transit"},
	{"Grace White", "56CDEF7890P1Q2R3", "Noah Thompson", "PQRST1234P", "Kerala", "Kochi, Kerala", "Completed"},
	{"Logan Harris", "78GHIJ9012S3T4U5", "Mia Clark", "UVWXY4567U", "Odisha", "Bhubaneswar, Odisha", "Processing"},
	{"Chloe Lewis", "90KLMN1234V5W6X7", "Lucas Robinson", "ZABCD7890Z", "Assam", "Guwahati, Assam", "Rejected"},
	{"Mason Walker", "12OPQR3456Y7Z8A9", "Charlotte Hall", "EFGHI0123E", "Jharkhand", "Ranchi, Jharkhand", "On Hold"},
	{"Lily Young", "34STUV5678B9C0D1", "Benjamin Allen", "JKLMN3456J", "Chhattisgarh", "Raipur, Chhattisgarh", "In Transit"},
}

var seedEstimates = []estimateDef{
	{"00001", "Christine Brooks", "089 Kutch Green Apt. 448", "04 Sep 2019", "12-Jan-2022", estimates.StatusCreated},
	{"00002", "Rosie Pearson", "979 Immanuel Ferry Suite 526", "28 May 2019", "29-Jul-2024", estimates.StatusProcessing},
	{"00003", "Darrell Caldwell", "8587 Frida Ports", "23 Nov 2019", "16-Mar-2022", estimates.StatusRejected},
	{"00004", "Gilbert Johnston", "768 Destiny Lake Suite 600", "05 Feb 2019", "10-Dec-2021", estimates.StatusCreated},
	{"00005", "Alan Cain", "042 Mylene Throughway", "29 Jul 2019", "21-Mar-2022", estimates.StatusProcessing},
	{"00006", "Alfred Murray", "543 Weimann Mountain", "15 Aug 2019", "20-Apr-2023", estimates.StatusCreated},
	{"00007", "Maggie Sullivan", "New Scottsboro", "21 Dec 2019", "16-Nov-2023", estimates.StatusProcessing},
	{"00008", "Rosie Todd", "New Jon", "30 Apr 2019", "01-May-2023", estimates.StatusOnHold},
	{"00009", "Dollie Hines", "124 Lyla Forge Suite 975", "09 Jan 2019", "23-Oct-2022", estimates.StatusInTransit},
}

// Every seeded estimate gets one section with these two rows.
var seedItems = []itemDef{
	{"Item 1", "hrs", "10", "50", "15"},
	{"Item 2", "pcs", "5", "100", "10"},
}

// Seed populates the projects collection with sample data. It is safe to
// call on every startup because it returns early if any project records
// already exist.
func Seed(app core.App) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId(Projects)
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindRecordsByFilter(projectsCol, "id != ''", "", 1, 0)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	for _, p := range seedProjects {
		r := core.NewRecord(projectsCol)
		r.Set("customer", p.customer)
		r.Set("reference_number", p.refNumber)
		r.Set("project_name", p.projectName)
		r.Set("project_number", p.projectNumber)
		r.Set("area_location", p.areaLocation)
		r.Set("address", p.address)
		r.Set("status", p.status)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save project %q: %w", p.projectName, err)
		}
	}

	log.Printf("seed: inserted %d projects\n", len(seedProjects))
	return nil
}

// SeedEstimates appends the sample estimates to st when it is empty.
func SeedEstimates(ctx context.Context, st estimates.Store) error {
	existing, err := st.All(ctx)
	if err != nil {
		return fmt.Errorf("seed: could not query estimates: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: estimates collection is empty – inserting seed data …")

	for i, def := range seedEstimates {
		doc, err := def.document(int64(i + 1))
		if err != nil {
			return fmt.Errorf("seed: estimate %s: %w", def.version, err)
		}
		if _, err := st.Append(ctx, doc); err != nil {
			return fmt.Errorf("seed: append estimate %s: %w", def.version, err)
		}
	}

	log.Printf("seed: inserted %d estimates\n", len(seedEstimates))
	return nil
}

// document builds the seeded estimate. Section and item ids are derived from
// n so they never collide with clock-based ids.
func (d estimateDef) document(n int64) (estimates.Document, error) {
	created, err := time.Parse("02 Jan 2006", d.created)
	if err != nil {
		return estimates.Document{}, err
	}
	modified, err := time.Parse("02-Jan-2006", d.modified)
	if err != nil {
		return estimates.Document{}, err
	}

	sec := estimates.Section{
		ID:       n * 100,
		Title:    "Section for " + d.project,
		Expanded: true,
	}
	for j, it := range seedItems {
		sec.Items = append(sec.Items, estimates.LineItem{
			ID:       n*100 + int64(j+1),
			Title:    it.title,
			Unit:     it.unit,
			Quantity: it.quantity,
			Price:    it.price,
			Margin:   it.margin,
			Total:    estimates.ItemTotal(it.quantity, it.price, it.margin),
		})
	}

	return estimates.Document{
		Version:   d.version,
		Project:   d.project,
		Client:    d.client,
		Status:    d.status,
		Sections:  []estimates.Section{sec},
		CreatedAt: created,
		UpdatedAt: modified,
	}, nil
}
