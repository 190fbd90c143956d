package knowledge

// referenceRanges maps canonical test identities to general adult
// reference ranges. Ranges vary by laboratory; a range printed on the
// source document always overrides these (the resolver enforces that
// priority). Keys are normalized test names.
var referenceRanges = map[string]Entry{
	// Complete blood count
	"hemoglobin": {
		Low: 12.0, High: 17.0, Unit: "g/dL",
		CriticalLow: critical(8.0), CriticalHigh: critical(20.0),
		Male:   &SexRange{Low: 13.5, High: 17.5},
		Female: &SexRange{Low: 12.0, High: 16.0},
	},
	"hematocrit": {
		Low: 36.0, High: 52.0, Unit: "%",
		CriticalLow: critical(20.0), CriticalHigh: critical(60.0),
	},
	"rbc_count": {
		Low: 4.0, High: 6.0, Unit: "million/µL",
		CriticalLow: critical(2.5), CriticalHigh: critical(7.5),
	},
	"wbc_count": {
		Low: 4500, High: 11000, Unit: "cells/µL",
		CriticalLow: critical(2000), CriticalHigh: critical(30000),
	},
	"platelet_count": {
		Low: 150000, High: 400000, Unit: "cells/µL",
		CriticalLow: critical(50000), CriticalHigh: critical(1000000),
	},
	"mcv":  {Low: 80, High: 100, Unit: "fL"},
	"mch":  {Low: 27, High: 33, Unit: "pg"},
	"mchc": {Low: 32, High: 36, Unit: "g/dL"},
	"rdw":  {Low: 11.5, High: 14.5, Unit: "%"},

	// Differential count
	"neutrophils": {Low: 40, High: 70, Unit: "%"},
	"lymphocytes": {Low: 20, High: 40, Unit: "%"},
	"monocytes":   {Low: 2, High: 8, Unit: "%"},
	"eosinophils": {Low: 1, High: 4, Unit: "%"},
	"basophils":   {Low: 0, High: 1, Unit: "%"},

	// Blood glucose
	"glucose_fasting": {
		Low: 70, High: 100, Unit: "mg/dL",
		CriticalLow: critical(50), CriticalHigh: critical(200),
	},
	"glucose_random": {
		Low: 70, High: 140, Unit: "mg/dL",
		CriticalLow: critical(50), CriticalHigh: critical(500),
	},
	"glucose_pp": {
		Low: 70, High: 140, Unit: "mg/dL",
		CriticalHigh: critical(300),
	},
	"hba1c": {
		Low: 4.0, High: 5.6, Unit: "%",
		CriticalHigh: critical(14.0),
	},

	// Kidney function
	"creatinine": {
		Low: 0.6, High: 1.2, Unit: "mg/dL",
		CriticalHigh: critical(10.0),
		Male:         &SexRange{Low: 0.7, High: 1.3},
		Female:       &SexRange{Low: 0.6, High: 1.1},
	},
	"bun": {
		Low: 7, High: 20, Unit: "mg/dL",
		CriticalHigh: critical(100),
	},
	"urea": {Low: 15, High: 45, Unit: "mg/dL"},
	"uric_acid": {
		Low: 2.5, High: 7.0, Unit: "mg/dL",
		Male:   &SexRange{Low: 3.5, High: 7.2},
		Female: &SexRange{Low: 2.5, High: 6.0},
	},
	"egfr": {
		Low: 90, High: 120, Unit: "mL/min/1.73m²",
		CriticalLow: critical(15),
	},

	// Liver function
	"sgpt_alt": {
		Low: 0, High: 40, Unit: "U/L",
		CriticalHigh: critical(1000),
	},
	"sgot_ast": {
		Low: 0, High: 40, Unit: "U/L",
		CriticalHigh: critical(1000),
	},
	"alp": {Low: 44, High: 147, Unit: "U/L"},
	"ggt": {Low: 0, High: 60, Unit: "U/L"},
	"bilirubin_total": {
		Low: 0.1, High: 1.2, Unit: "mg/dL",
		CriticalHigh: critical(15.0),
	},
	"bilirubin_direct": {Low: 0, High: 0.3, Unit: "mg/dL"},
	"albumin": {
		Low: 3.5, High: 5.0, Unit: "g/dL",
		CriticalLow: critical(2.0),
	},
	"total_protein": {Low: 6.0, High: 8.3, Unit: "g/dL"},
	"ag_ratio":      {Low: 1.0, High: 2.5, Unit: ""},

	// Lipid panel
	"cholesterol_total": {
		Low: 0, High: 200, Unit: "mg/dL",
		CriticalHigh: critical(300),
	},
	"hdl": {
		Low: 40, High: 60, Unit: "mg/dL",
		CriticalLow: critical(25),
	},
	"ldl": {
		Low: 0, High: 100, Unit: "mg/dL",
		CriticalHigh: critical(190),
	},
	"triglycerides": {
		Low: 0, High: 150, Unit: "mg/dL",
		CriticalHigh: critical(500),
	},
	"vldl": {Low: 5, High: 40, Unit: "mg/dL"},

	// Thyroid panel
	"tsh": {
		Low: 0.4, High: 4.0, Unit: "mIU/L",
		CriticalLow: critical(0.1), CriticalHigh: critical(10.0),
	},
	"t3":      {Low: 80, High: 200, Unit: "ng/dL"},
	"t4":      {Low: 5.0, High: 12.0, Unit: "µg/dL"},
	"free_t3": {Low: 2.3, High: 4.2, Unit: "pg/mL"},
	"free_t4": {Low: 0.8, High: 1.8, Unit: "ng/dL"},

	// Electrolytes
	"sodium": {
		Low: 136, High: 145, Unit: "mEq/L",
		CriticalLow: critical(120), CriticalHigh: critical(160),
	},
	"potassium": {
		Low: 3.5, High: 5.0, Unit: "mEq/L",
		CriticalLow: critical(2.5), CriticalHigh: critical(6.5),
	},
	"chloride": {
		Low: 98, High: 106, Unit: "mEq/L",
		CriticalLow: critical(80), CriticalHigh: critical(120),
	},
	"calcium": {
		Low: 8.5, High: 10.5, Unit: "mg/dL",
		CriticalLow: critical(6.0), CriticalHigh: critical(13.0),
	},
	"magnesium": {
		Low: 1.5, High: 2.5, Unit: "mg/dL",
		CriticalLow: critical(1.0), CriticalHigh: critical(4.0),
	},
	"phosphorus": {Low: 2.5, High: 4.5, Unit: "mg/dL"},

	// Cardiac markers
	"troponin": {
		Low: 0, High: 0.04, Unit: "ng/mL",
		CriticalHigh: critical(0.1),
	},
	"troponin_t": {
		Low: 0, High: 0.01, Unit: "ng/mL",
		CriticalHigh: critical(0.1),
	},
	"ck_mb": {
		Low: 0, High: 25, Unit: "U/L",
		CriticalHigh: critical(100),
	},
	"bnp": {
		Low: 0, High: 100, Unit: "pg/mL",
		CriticalHigh: critical(500),
	},

	// Inflammation markers
	"crp": {
		Low: 0, High: 3.0, Unit: "mg/L",
		CriticalHigh: critical(10.0),
	},
	"procalcitonin": {Low: 0, High: 0.5, Unit: "ng/mL"},
	"esr": {
		Low: 0, High: 20, Unit: "mm/hr",
		Male:   &SexRange{Low: 0, High: 15},
		Female: &SexRange{Low: 0, High: 20},
	},

	// Coagulation
	"pt": {
		Low: 11, High: 13.5, Unit: "seconds",
		CriticalHigh: critical(30),
	},
	"inr": {
		Low: 0.8, High: 1.1, Unit: "",
		CriticalHigh: critical(5.0),
	},
	"aptt": {
		Low: 30, High: 40, Unit: "seconds",
		CriticalHigh: critical(100),
	},

	// Vitamins and minerals
	"vitamin_d": {
		Low: 30, High: 100, Unit: "ng/mL",
		CriticalLow: critical(10),
	},
	"vitamin_b12": {Low: 200, High: 900, Unit: "pg/mL"},
	"folate":      {Low: 3, High: 17, Unit: "ng/mL"},
	"iron": {
		Low: 60, High: 170, Unit: "µg/dL",
		Male:   &SexRange{Low: 65, High: 175},
		Female: &SexRange{Low: 50, High: 170},
	},
	"ferritin": {
		Low: 12, High: 300, Unit: "ng/mL",
		Male:   &SexRange{Low: 24, High: 336},
		Female: &SexRange{Low: 11, High: 307},
	},
	"tibc": {Low: 250, High: 370, Unit: "µg/dL"},
}

// testAliases maps normalized document test names onto canonical
// identities. Lab reports name the same assay many ways (SGPT vs ALT,
// HB vs hemoglobin); the alias table absorbs the common variants.
var testAliases = map[string]string{
	"hb":  "hemoglobin",
	"hgb": "hemoglobin",

	"pcv":             "hematocrit",
	"rbc":             "rbc_count",
	"total_rbc_count": "rbc_count",

	"wbc":                   "wbc_count",
	"tlc":                   "wbc_count",
	"total_leucocyte_count": "wbc_count",
	"total_wbc_count":       "wbc_count",

	"platelet":  "platelet_count",
	"platelets": "platelet_count",

	"fbs":                       "glucose_fasting",
	"fasting_blood_sugar":       "glucose_fasting",
	"fasting_glucose":           "glucose_fasting",
	"rbs":                       "glucose_random",
	"random_blood_sugar":        "glucose_random",
	"glucose":                   "glucose_random",
	"ppbs":                      "glucose_pp",
	"pp_blood_sugar":            "glucose_pp",
	"post_prandial_blood_sugar": "glucose_pp",

	"blood_urea": "urea",
	"gfr":        "egfr",

	"sgpt":                   "sgpt_alt",
	"alt":                    "sgpt_alt",
	"sgot":                   "sgot_ast",
	"ast":                    "sgot_ast",
	"alkaline_phosphatase":   "alp",
	"total_bilirubin":        "bilirubin_total",
	"direct_bilirubin":       "bilirubin_direct",
	"a_g_ratio":              "ag_ratio",
	"albumin_globulin_ratio": "ag_ratio",

	"cholesterol":       "cholesterol_total",
	"total_cholesterol": "cholesterol_total",
	"hdl_cholesterol":   "hdl",
	"ldl_cholesterol":   "ldl",

	"troponin_i": "troponin",

	"esr_westergren":   "esr",
	"prothrombin_time": "pt",
}
