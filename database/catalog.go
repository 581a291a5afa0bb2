package database

import (
	"github.com/sahilchouksey/uniadvisor-api/model"
)

// UniversityCatalog is the fixed catalog presented to every user.
// Selection records reference these ids; the catalog itself never
// changes at runtime.
var UniversityCatalog = []model.University{
	// --- USA ---
	{
		ID:             "usa-1",
		Name:           "Stanford University",
		Country:        "USA",
		Major:          "Computer Science",
		Fee:            "$65,000",
		AcceptanceRate: "Low",
		Description:    "Located in Silicon Valley, offering unparalleled access to the tech industry and research opportunities.",
	},
	{
		ID:             "usa-2",
		Name:           "MIT",
		Country:        "USA",
		Major:          "Computer Science",
		Fee:            "$62,000",
		AcceptanceRate: "Low",
		Description:    "A global leader in engineering and computer science, known for its rigorous academics and innovation.",
	},
	{
		ID:             "usa-3",
		Name:           "University of Washington",
		Country:        "USA",
		Major:          "Computer Science",
		Fee:            "$40,000",
		AcceptanceRate: "Medium",
		Description:    "A top-tier public university with strong ties to Seattle's booming tech sector (Microsoft, Amazon).",
	},
	{
		ID:             "usa-4",
		Name:           "Arizona State University",
		Country:        "USA",
		Major:          "Computer Science",
		Fee:            "$32,000",
		AcceptanceRate: "High",
		Description:    "One of the largest universities in the U.S., recognized for innovation and a massive alumni network.",
	},
	{
		ID:             "usa-5",
		Name:           "Georgia Tech",
		Country:        "USA",
		Major:          "Computer Science",
		Fee:            "$30,000",
		AcceptanceRate: "Medium",
		Description:    "A leading public research university in Atlanta, offering top-ranked engineering and computing programs.",
	},

	// --- UK ---
	{
		ID:             "uk-1",
		Name:           "University of Oxford",
		Country:        "UK",
		Major:          "Computer Science",
		Fee:            "$50,000",
		AcceptanceRate: "Low",
		Description:    "The oldest university in the English-speaking world, offering a unique tutorial-based learning system.",
	},
	{
		ID:             "uk-2",
		Name:           "Imperial College London",
		Country:        "UK",
		Major:          "Computer Science",
		Fee:            "$45,000",
		AcceptanceRate: "Low",
		Description:    "A world-class university in London focusing exclusively on science, engineering, medicine, and business.",
	},
	{
		ID:             "uk-3",
		Name:           "University of Edinburgh",
		Country:        "UK",
		Major:          "Computer Science",
		Fee:            "$30,000",
		AcceptanceRate: "Medium",
		Description:    "A historic institution in Scotland known for its strong research programs and vibrant student life.",
	},
	{
		ID:             "uk-4",
		Name:           "University of Manchester",
		Country:        "UK",
		Major:          "Computer Science",
		Fee:            "$28,000",
		AcceptanceRate: "Medium",
		Description:    "A member of the prestigious Russell Group, located in one of the UK's most dynamic student cities.",
	},
	{
		ID:             "uk-5",
		Name:           "University of Leeds",
		Country:        "UK",
		Major:          "Computer Science",
		Fee:            "$25,000",
		AcceptanceRate: "High",
		Description:    "A large, campus-based university with a strong focus on research impact and student experience.",
	},

	// --- Canada ---
	{
		ID:             "can-1",
		Name:           "University of Toronto",
		Country:        "Canada",
		Major:          "Computer Science",
		Fee:            "$45,000",
		AcceptanceRate: "Low",
		Description:    "Canada's top-ranked university, located in a diverse city with a thriving tech ecosystem.",
	},
	{
		ID:             "can-2",
		Name:           "UBC (Vancouver)",
		Country:        "Canada",
		Major:          "Computer Science",
		Fee:            "$40,000",
		AcceptanceRate: "Low",
		Description:    "Known for its stunning campus and strong emphasis on sustainability and research excellence.",
	},
	{
		ID:             "can-3",
		Name:           "University of Waterloo",
		Country:        "Canada",
		Major:          "Computer Science",
		Fee:            "$35,000",
		AcceptanceRate: "Medium",
		Description:    "Famous for its cooperative education (co-op) program, providing significant work experience.",
	},
	{
		ID:             "can-4",
		Name:           "McGill University",
		Country:        "Canada",
		Major:          "Computer Science",
		Fee:            "$30,000",
		AcceptanceRate: "Medium",
		Description:    "Located in Montreal, McGill is known for its international reputation and diverse student body.",
	},
	{
		ID:             "can-5",
		Name:           "Dalhousie University",
		Country:        "Canada",
		Major:          "Computer Science",
		Fee:            "$18,000",
		AcceptanceRate: "High",
		Description:    "A major research university in Nova Scotia, offering a friendly community and coastal lifestyle.",
	},

	// --- Australia ---
	{
		ID:             "aus-1",
		Name:           "University of Melbourne",
		Country:        "Australia",
		Major:          "Computer Science",
		Fee:            "$42,000",
		AcceptanceRate: "Low",
		Description:    "Australia's leading university, offering a flexible \"Melbourne Model\" curriculum structure.",
	},
	{
		ID:             "aus-2",
		Name:           "UNSW Sydney",
		Country:        "Australia",
		Major:          "Computer Science",
		Fee:            "$40,000",
		AcceptanceRate: "Medium",
		Description:    "A powerhouse in engineering and technology, with strong industry connections in Sydney.",
	},
	{
		ID:             "aus-3",
		Name:           "University of Queensland",
		Country:        "Australia",
		Major:          "Computer Science",
		Fee:            "$35,000",
		AcceptanceRate: "Medium",
		Description:    "Located in Brisbane, UQ is known for its beautiful campus and high-impact research.",
	},
	{
		ID:             "aus-4",
		Name:           "Monash University",
		Country:        "Australia",
		Major:          "Computer Science",
		Fee:            "$32,000",
		AcceptanceRate: "High",
		Description:    "The largest university in Australia, with a global footprint and modern facilities.",
	},
	{
		ID:             "aus-5",
		Name:           "RMIT University",
		Country:        "Australia",
		Major:          "Computer Science",
		Fee:            "$22,000",
		AcceptanceRate: "High",
		Description:    "Known for its practical focus, design excellence, and central location in Melbourne.",
	},
}
