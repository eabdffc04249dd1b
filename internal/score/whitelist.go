package score

// The sets below back whitelist_penalty's first-match-wins NAME
// suppression. A surface form that collides with a disease eponym,
// a drug, a procedure, an anatomical term, a section header, or an
// organization token is far more likely prose than a patient's name.

var diseaseEponyms = newSet(
	"alzheimer", "parkinson", "huntington", "crohn", "hodgkin",
	"addison", "cushing", "graves", "raynaud", "sjogren", "wilson",
	"marfan", "down syndrome", "asperger", "tourette", "bell palsy",
	"kaposi", "guillain barre", "epstein barr",
)

var diseaseNames = newSet(
	"diabetes", "hypertension", "pneumonia", "influenza", "bronchitis",
	"asthma", "arthritis", "osteoporosis", "anemia", "leukemia",
	"lymphoma", "melanoma", "carcinoma", "sarcoma", "cirrhosis",
	"hepatitis", "nephritis", "dermatitis", "pancreatitis", "meningitis",
	"sepsis", "schizophrenia", "depression", "anxiety disorder",
)

var medications = newSet(
	"lisinopril", "metformin", "atorvastatin", "metoprolol", "amlodipine",
	"omeprazole", "losartan", "gabapentin", "sertraline", "levothyroxine",
	"albuterol", "furosemide", "prednisone", "warfarin", "insulin",
	"aspirin", "ibuprofen", "acetaminophen", "clopidogrel", "simvastatin",
)

var procedures = newSet(
	"appendectomy", "colonoscopy", "endoscopy", "angioplasty",
	"bypass surgery", "catheterization", "biopsy", "mammogram",
	"ultrasound", "mri scan", "ct scan", "x-ray", "dialysis",
	"chemotherapy", "radiation therapy", "physical therapy",
	"intubation", "defibrillation", "transfusion", "vaccination",
)

var anatomicalTerms = newSet(
	"femur", "tibia", "fibula", "humerus", "clavicle", "sternum",
	"vertebrae", "cranium", "mandible", "pelvis", "scapula",
	"ventricle", "atrium", "cortex", "cerebellum", "pancreas",
	"gallbladder", "duodenum", "esophagus", "trachea", "bronchus",
)

var sectionHeaders = newSet(
	"impression", "findings", "history", "assessment", "plan",
	"medications", "allergies", "diagnosis", "procedure", "results",
	"conclusion", "summary", "chief complaint", "present illness",
)

var organizationTokens = newSet(
	"hospital", "clinic", "medical center", "health system", "laboratory",
	"pharmacy", "insurance", "health plan", "associates", "partners llc",
	"regional medical", "urgent care", "department of health",
)

func newSet(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
