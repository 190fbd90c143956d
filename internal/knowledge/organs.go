package knowledge

// organSystems attributes each canonical test identity to a coarse
// organ system used to group abnormal findings in report summaries.
// Tests without an entry fall back to General.
var organSystems = map[string]string{
	// Hematology
	"hemoglobin":     "Blood",
	"hematocrit":     "Blood",
	"rbc_count":      "Blood",
	"wbc_count":      "Blood",
	"platelet_count": "Blood",
	"mcv":            "Blood",
	"mch":            "Blood",
	"mchc":           "Blood",
	"rdw":            "Blood",
	"neutrophils":    "Blood",
	"lymphocytes":    "Blood",
	"monocytes":      "Blood",
	"eosinophils":    "Blood",
	"basophils":      "Blood",
	"esr":            "Blood",
	"pt":             "Blood",
	"inr":            "Blood",
	"aptt":           "Blood",
	"iron":           "Blood",
	"ferritin":       "Blood",
	"tibc":           "Blood",
	"vitamin_b12":    "Blood",
	"folate":         "Blood",

	// Renal
	"creatinine": "Kidney",
	"bun":        "Kidney",
	"urea":       "Kidney",
	"uric_acid":  "Kidney",
	"egfr":       "Kidney",

	// Hepatic
	"sgpt_alt":         "Liver",
	"sgot_ast":         "Liver",
	"alp":              "Liver",
	"ggt":              "Liver",
	"bilirubin_total":  "Liver",
	"bilirubin_direct": "Liver",
	"albumin":          "Liver",
	"total_protein":    "Liver",
	"ag_ratio":         "Liver",

	// Glycemic control
	"glucose_fasting": "Pancreas",
	"glucose_random":  "Pancreas",
	"glucose_pp":      "Pancreas",
	"hba1c":           "Pancreas",

	// Cardiovascular
	"cholesterol_total": "Heart",
	"hdl":               "Heart",
	"ldl":               "Heart",
	"triglycerides":     "Heart",
	"vldl":              "Heart",
	"troponin":          "Heart",
	"troponin_t":        "Heart",
	"ck_mb":             "Heart",
	"bnp":               "Heart",

	// Endocrine
	"tsh":     "Thyroid",
	"t3":      "Thyroid",
	"t4":      "Thyroid",
	"free_t3": "Thyroid",
	"free_t4": "Thyroid",

	// Electrolytes
	"sodium":     "Electrolytes",
	"potassium":  "Electrolytes",
	"chloride":   "Electrolytes",
	"calcium":    "Electrolytes",
	"magnesium":  "Electrolytes",
	"phosphorus": "Electrolytes",

	// Inflammation
	"crp":           "Immune System",
	"procalcitonin": "Immune System",
}
