package order

// StdSentinel is recorded for color/width when the operator leaves the
// field blank.
const StdSentinel = "STD"

// RosterBypassBranch uses only the static roster below and never queries
// the sales_persons directory.
const RosterBypassBranch = "Delhi"

var Branches = []string{
	"Ahmedabad", "Banglore", "Delhi", "Jaipur", "Kolkata",
	"Ludhiana", "Mumbai", "Surat", "Tirupur", "Ulhasnagar",
}

var Categories = []string{
	"CKU", "CRO", "CUP", "ELASTIC", "EMBROIDARY",
	"EYE_N_HOOK", "PRINTING", "TLU", "VAU", "WARP(UDHANA)",
}

var UOMs = []string{"INCH", "KG", "MTR", "PCS", "PKT", "ROLL", "YARD"}

// CategoryColumns maps a category to the products column searched for it.
var CategoryColumns = map[string]string{
	"CKU":          "cku",
	"CRO":          "cro",
	"CUP":          "cup",
	"DELHI":        "delhi",
	"ELASTIC":      "elastic",
	"EMBROIDARY":   "embroidary",
	"EYE_N_HOOK":   "eye_n_hook",
	"PRINTING":     "printing",
	"TLU":          "tlu",
	"VAU":          "vau",
	"WARP(UDHANA)": "warp",
}

// BranchSalesPersons is the static fallback roster per branch, merged
// with whatever the sales_persons directory returns.
var BranchSalesPersons = map[string][]string{
	"Mumbai":     {"Amit Korgaonkar", "Santosh Pachratkar", "Rakesh Jain", "Kamlesh Sutar", "Pradeep Jadhav", "Mumbai HO"},
	"Ulhasnagar": {"Shiv Ratan", "Viay Sutar", "Ulasnagar HO"},
	"Kolkata":    {"Rajesh Jain", "Kolkata HO"},
	"Jaipur":     {"Durgesh Bhati", "Jaipur HO"},
	"Delhi":      {"Lalit Maroo", "Anish Jain", "Suresh Nautiyal", "Rahul Vashishtha", "Mohit Sharma", "Delhi HO"},
	"Banglore":   {"Balasubramanyam", "Tarachand", "Bangalore HO"},
	"Tirupur":    {"Alexander Pushkin", "Subramanian", "Mani Maran", "Tirupur HO"},
	"Ahmedabad":  {"ravindra kaushik", "Ahmedabad HO"},
	"Surat":      {"Anil Marthe", "Raghuveer Darbar", "Sailesh Pathak", "Vanraj Darbar", "Surat HO"},
	"Ludhiana":   {"Ludhiana HO"},
}

// BranchHead is the approval contact resolved per branch when orders are
// flattened for the sink.
type BranchHead struct {
	Name  string
	Email string
}

var branchHeads = map[string]BranchHead{
	"Ahmedabad":  {Name: "Ravindra kaushik", Email: "ahmedabad@ginzalimited.com"},
	"Banglore":   {Name: "Murali Krishna", Email: "murali.krishna@ginzalimited.com"},
	"Delhi":      {Name: "Vinay Chhajer", Email: "vinay.chhajer@ginzalimited.com"},
	"Jaipur":     {Name: "Branch Head", Email: "admin@ginzalimited.com"},
	"Kolkata":    {Name: "Vishal Amhore", Email: "vishalambhore@ginzalimited.com"},
	"Ludhiana":   {Name: "Branch Head", Email: "admin@ginzalimited.com"},
	"Mumbai":     {Name: "Saskhi", Email: "crm.mumbai@ginzalimited.com"},
	"Surat":      {Name: "Piyush Baid", Email: "piyush.baid@ginzalimited.com"},
	"Tirupur":    {Name: "Ravi Varman", Email: "tirupur@ginzalimited.com"},
	"Ulhasnagar": {Name: "Sachin Bhosale", Email: "sachin.bhosle@ginzalimited.com"},
}

var defaultBranchHead = BranchHead{Name: "Administrator", Email: "admin@ginzalimited.com"}

// BranchHeadFor returns the approval contact for a branch, falling back
// to the administrator contact for unknown branches.
func BranchHeadFor(branch string) BranchHead {
	if head, ok := branchHeads[branch]; ok {
		return head
	}
	return defaultBranchHead
}
