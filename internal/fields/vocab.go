package fields

// Fixed vocabularies for field extraction. They are read-only reference
// data: matching preserves the order given here.

// positionKeywords are checked against the subject line before the
// pattern templates.
var positionKeywords = []string{
	"software engineer", "developer", "programmer", "analyst",
	"manager", "consultant", "specialist", "coordinator",
	"director", "architect", "designer", "administrator",
}

// commonSkills is the technical skill vocabulary. Matches keep this order
// and the canonical spelling below.
var commonSkills = []string{
	"Python", "Java", "JavaScript", "C++", "C#", "SQL", "HTML", "CSS",
	"React", "Angular", "Node.js", "Django", "Flask", "Spring Boot",
	"AWS", "Azure", "Docker", "Kubernetes", "Git", "Linux", "Windows",
	"Machine Learning", "Data Science", "AI", "TensorFlow", "PyTorch",
	"Salesforce", "SAP", "Oracle", "MongoDB", "PostgreSQL", "MySQL",
}

// educationKeywords trigger the education sentence capture.
var educationKeywords = []string{
	"bachelor", "master", "phd", "degree", "university", "college",
	"btech", "mtech", "mba", "bca", "mca", "diploma",
}

// locationIndicators are label prefixes scanned in raw text when none of
// the location patterns match.
var locationIndicators = []string{
	"City:", "Location:", "Address:", "Based in:", "Located in:",
}
