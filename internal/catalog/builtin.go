package catalog

import "ssdcollector/internal/models"

// TAAPU is the Test of Articulation in Urdu for Pakistani Children
var TAAPU = models.TestBattery{
	ID:                        "taapu",
	Name:                      "TAAPU",
	FullName:                  "Test of Articulation in Urdu for Pakistani Children",
	Version:                   "1.0",
	Language:                  "Urdu",
	TargetAgeYears:            "4-8",
	AdministrationTimeMinutes: 30,
	Description:               "Standardized speech sound assessment for Urdu-speaking children",
	Instructions: []string{
		"Present each word with its image",
		"Ask the child to name the picture",
		"Record the child's production",
		"Note any sound substitutions or deletions",
	},
	Protocols: []models.Protocol{
		{
			ID:         "fronting",
			Name:       "FRONTING",
			CheckNotes: "Check all back sounds - velar sounds replaced with alveolar",
			Words: []models.Word{
				{ID: 1, Word: "Bikri", Urdu: "بکری", Transliteration: "Bikri", Pronunciation: "bik-ree", Phoneme: "/k/"},
				{ID: 2, Word: "Kitaab", Urdu: "کتاب", Transliteration: "Kitaab", Pronunciation: "ki-taab", Phoneme: "/k/, /t/"},
				{ID: 3, Word: "Patang", Urdu: "پتنگ", Transliteration: "Patang", Pronunciation: "pa-tang", Phoneme: "/t/, /ŋ/"},
				{ID: 4, Word: "Makkhi", Urdu: "مکھی", Transliteration: "Makkhi", Pronunciation: "mak-khee", Phoneme: "/k/"},
				{ID: 5, Word: "Ghubbara", Urdu: "غبارہ", Transliteration: "Ghubbara", Pronunciation: "ghub-baa-ra", Phoneme: "/gh/"},
				{ID: 6, Word: "Batakh", Urdu: "بطخ", Transliteration: "Batakh", Pronunciation: "ba-takh", Phoneme: "/kh/"},
				{ID: 7, Word: "Kharbooza", Urdu: "خربوزہ", Transliteration: "Kharbooza", Pronunciation: "khar-boo-za", Phoneme: "/kh/"},
				{ID: 8, Word: "Naak", Urdu: "ناک", Transliteration: "Naak", Pronunciation: "naak", Phoneme: "/k/"},
			},
		},
		{
			ID:         "stopping",
			Name:       "STOPPING",
			CheckNotes: "Check all fricatives - replaced with stops",
			Words: []models.Word{
				{ID: 1, Word: "Sher", Urdu: "شیر", Transliteration: "Sher", Pronunciation: "share", Phoneme: "/ʃ/"},
				{ID: 2, Word: "Baadshah", Urdu: "بادشاہ", Transliteration: "Baadshah", Pronunciation: "baad-shah", Phoneme: "/ʃ/"},
				{ID: 3, Word: "Baarish", Urdu: "بارش", Transliteration: "Baarish", Pronunciation: "baa-rish", Phoneme: "/ʃ/"},
				{ID: 4, Word: "Sooraj", Urdu: "سورج", Transliteration: "Sooraj", Pronunciation: "soo-raj", Phoneme: "/s/"},
				{ID: 5, Word: "Rassi", Urdu: "رسی", Transliteration: "Rassi", Pronunciation: "ras-see", Phoneme: "/s/"},
				{ID: 6, Word: "Glass", Urdu: "گلاس", Transliteration: "Glass", Pronunciation: "glass", Phoneme: "/s/"},
				{ID: 7, Word: "Kharbooza", Urdu: "خربوزہ", Transliteration: "Kharbooza", Pronunciation: "khar-boo-za", Phoneme: "/kh/"},
				{ID: 8, Word: "Zabaan", Urdu: "زبان", Transliteration: "Zabaan", Pronunciation: "za-baan", Phoneme: "/z/"},
				{ID: 9, Word: "Mez", Urdu: "میز", Transliteration: "Mez", Pronunciation: "mez", Phoneme: "/z/"},
				{ID: 10, Word: "Saanp", Urdu: "سانپ", Transliteration: "Saanp", Pronunciation: "saanp", Phoneme: "/s/"},
			},
		},
		{
			ID:         "r_disorder",
			Name:       "/r/ ERROR",
			CheckNotes: "Check all /r/ sounds in different positions",
			Words: []models.Word{
				{ID: 1, Word: "Rassi", Urdu: "رسی", Transliteration: "Rassi", Pronunciation: "ras-see", Phoneme: "/r/"},
				{ID: 2, Word: "Baarish", Urdu: "بارش", Transliteration: "Baarish", Pronunciation: "baa-rish", Phoneme: "/r/"},
				{ID: 3, Word: "Juraab", Urdu: "جراب", Transliteration: "Juraab", Pronunciation: "ju-raab", Phoneme: "/r/"},
				{ID: 4, Word: "Bikri", Urdu: "بکری", Transliteration: "Bikri", Pronunciation: "bik-ree", Phoneme: "/r/"},
				{ID: 5, Word: "Sher", Urdu: "شیر", Transliteration: "Sher", Pronunciation: "share", Phoneme: "/r/"},
				{ID: 6, Word: "Magarmachh", Urdu: "مگر مچھ", Transliteration: "Magarmachh", Pronunciation: "ma-gar-machh", Phoneme: "/r/"},
				{ID: 7, Word: "Murghi", Urdu: "مرغی", Transliteration: "Murghi", Pronunciation: "mur-ghee", Phoneme: "/r/"},
				{ID: 8, Word: "Machhar", Urdu: "مچھر", Transliteration: "Machhar", Pronunciation: "mach-har", Phoneme: "/r/"},
				{ID: 9, Word: "Chhatri", Urdu: "چھتری", Transliteration: "Chhatri", Pronunciation: "chhat-ree", Phoneme: "/r/"},
			},
		},
		{
			ID:         "final_consonant_deletion",
			Name:       "FINAL CONSONANT DELETION",
			CheckNotes: "Check final consonants - omission of final sounds",
			Words: []models.Word{
				{ID: 1, Word: "Sher", Urdu: "شیر", Transliteration: "Sher", Pronunciation: "share", Phoneme: "/r/"},
				{ID: 2, Word: "Gate", Urdu: "گیٹ", Transliteration: "Gate", Pronunciation: "gate", Phoneme: "/t/"},
				{ID: 3, Word: "Juraab", Urdu: "جراب", Transliteration: "Juraab", Pronunciation: "ju-raab", Phoneme: "/b/"},
				{ID: 4, Word: "Barf", Urdu: "برف", Transliteration: "Barf", Pronunciation: "barf", Phoneme: "/f/"},
				{ID: 5, Word: "Saanp", Urdu: "سانپ", Transliteration: "Saanp", Pronunciation: "saanp", Phoneme: "/p/"},
				{ID: 6, Word: "Wagon", Urdu: "ویگن", Transliteration: "Wagon", Pronunciation: "wa-gon", Phoneme: "/n/"},
				{ID: 7, Word: "Kitaab", Urdu: "کتاب", Transliteration: "Kitaab", Pronunciation: "ki-taab", Phoneme: "/b/"},
				{ID: 8, Word: "Baarish", Urdu: "بارش", Transliteration: "Baarish", Pronunciation: "baa-rish", Phoneme: "/ʃ/"},
				{ID: 9, Word: "Mez", Urdu: "میز", Transliteration: "Mez", Pronunciation: "mez", Phoneme: "/z/"},
				{ID: 10, Word: "Daant", Urdu: "دانت", Transliteration: "Daant", Pronunciation: "daant", Phoneme: "/t/"},
			},
		},
		{
			ID:         "nasal_assimilation",
			Name:       "NASAL ASSIMILATION",
			CheckNotes: "Check non-nasal sounds in words with nasal sounds",
			Words: []models.Word{
				{ID: 1, Word: "Mez", Urdu: "میز", Transliteration: "Mez", Pronunciation: "mez", Phoneme: "/m/"},
				{ID: 2, Word: "Bandar", Urdu: "بندر", Transliteration: "Bandar", Pronunciation: "ban-dar", Phoneme: "/n/"},
				{ID: 3, Word: "Naak", Urdu: "ناک", Transliteration: "Naak", Pronunciation: "naak", Phoneme: "/n/"},
				{ID: 4, Word: "Angoor", Urdu: "انگور", Transliteration: "Angoor", Pronunciation: "an-goor", Phoneme: "/ŋ/"},
				{ID: 5, Word: "Paani", Urdu: "پانی", Transliteration: "Paani", Pronunciation: "paa-nee", Phoneme: "/n/"},
				{ID: 6, Word: "Chaand", Urdu: "چاند", Transliteration: "Chaand", Pronunciation: "chaand", Phoneme: "/n/"},
				{ID: 7, Word: "Uniform", Urdu: "یونیفارم", Transliteration: "Uniform", Pronunciation: "yoo-ni-form", Phoneme: "/n/, /m/"},
				{ID: 8, Word: "Saanp", Urdu: "سانپ", Transliteration: "Saanp", Pronunciation: "saanp", Phoneme: "/n/"},
				{ID: 9, Word: "Zabaan", Urdu: "زبان", Transliteration: "Zabaan", Pronunciation: "za-baan", Phoneme: "/n/"},
				{ID: 10, Word: "Patang", Urdu: "پتنگ", Transliteration: "Patang", Pronunciation: "pa-tang", Phoneme: "/ŋ/"},
			},
		},
		{
			ID:         "depalatalization",
			Name:       "DEPALATALIZATION",
			CheckNotes: "Check palatal sounds - replaced with alveolar",
			Words: []models.Word{
				{ID: 1, Word: "Tamasur", Urdu: "تماثر", Transliteration: "Tamasur", Pronunciation: "ta-ma-sur", Phoneme: "/t/"},
				{ID: 2, Word: "Gate", Urdu: "گیٹ", Transliteration: "Gate", Pronunciation: "gate", Phoneme: "/g/"},
				{ID: 3, Word: "Tabaah", Urdu: "تبہ", Transliteration: "Tabaah", Pronunciation: "ta-baah", Phoneme: "/t/"},
				{ID: 4, Word: "Ganda", Urdu: "گندہ", Transliteration: "Ganda", Pronunciation: "gan-da", Phoneme: "/g/"},
				{ID: 5, Word: "Chidiya", Urdu: "چڑیا", Transliteration: "Chidiya", Pronunciation: "chi-di-ya", Phoneme: "/tʃ/"},
				{ID: 6, Word: "Pahaar", Urdu: "پہاڑ", Transliteration: "Pahaar", Pronunciation: "pa-haar", Phoneme: "/ɽ/"},
				{ID: 7, Word: "Sher", Urdu: "شیر", Transliteration: "Sher", Pronunciation: "share", Phoneme: "/ʃ/"},
				{ID: 8, Word: "Baarish", Urdu: "بارش", Transliteration: "Baarish", Pronunciation: "baa-rish", Phoneme: "/ʃ/"},
				{ID: 9, Word: "Baadshah", Urdu: "بادشاہ", Transliteration: "Baadshah", Pronunciation: "baad-shah", Phoneme: "/ʃ/"},
				{ID: 10, Word: "Card", Urdu: "کارڈ", Transliteration: "Card", Pronunciation: "card", Phoneme: "/k/"},
			},
		},
	},
}

// GFTAKLPA is the English Goldman-Fristoe / Khan-Lewis battery
var GFTAKLPA = models.TestBattery{
	ID:                        "gfta_klpa",
	Name:                      "GFTA-3 / KLPA-3",
	FullName:                  "Goldman-Fristoe Test of Articulation / Khan-Lewis Phonological Analysis",
	Version:                   "3.0",
	Language:                  "English",
	TargetAgeYears:            "2-21",
	AdministrationTimeMinutes: 15,
	Description:               "Comprehensive articulation and phonological assessment for English speakers",
	Instructions: []string{
		"Show each picture card to the child",
		`Say "Tell me what you see"`,
		"Record the spontaneous response",
		"If needed, provide a model for imitation",
	},
	Protocols: []models.Protocol{
		{
			ID:         "initial_consonants",
			Name:       "INITIAL CONSONANTS",
			CheckNotes: "Word-initial consonant production",
			Words: []models.Word{
				{ID: 1, Word: "House", Pronunciation: "hows", Phoneme: "/h/"},
				{ID: 2, Word: "Ball", Pronunciation: "bawl", Phoneme: "/b/"},
				{ID: 3, Word: "Dog", Pronunciation: "dawg", Phoneme: "/d/"},
				{ID: 4, Word: "Cat", Pronunciation: "kat", Phoneme: "/k/"},
				{ID: 5, Word: "Sun", Pronunciation: "suhn", Phoneme: "/s/"},
				{ID: 6, Word: "Fish", Pronunciation: "fish", Phoneme: "/f/"},
				{ID: 7, Word: "Goat", Pronunciation: "goht", Phoneme: "/g/"},
				{ID: 8, Word: "Table", Pronunciation: "tay-buhl", Phoneme: "/t/"},
				{ID: 9, Word: "Monkey", Pronunciation: "muhng-kee", Phoneme: "/m/"},
				{ID: 10, Word: "Nose", Pronunciation: "nohz", Phoneme: "/n/"},
				{ID: 11, Word: "Pig", Pronunciation: "pig", Phoneme: "/p/"},
				{ID: 12, Word: "Window", Pronunciation: "win-doh", Phoneme: "/w/"},
			},
		},
		{
			ID:         "medial_consonants",
			Name:       "MEDIAL CONSONANTS",
			CheckNotes: "Word-medial consonant production",
			Words: []models.Word{
				{ID: 1, Word: "Spider", Pronunciation: "spy-der", Phoneme: "/d/"},
				{ID: 2, Word: "Rabbit", Pronunciation: "rab-it", Phoneme: "/b/"},
				{ID: 3, Word: "Ladder", Pronunciation: "lad-er", Phoneme: "/d/"},
				{ID: 4, Word: "Wagon", Pronunciation: "wag-un", Phoneme: "/g/"},
				{ID: 5, Word: "Carrot", Pronunciation: "kar-ut", Phoneme: "/r/"},
				{ID: 6, Word: "Butter", Pronunciation: "buht-er", Phoneme: "/t/"},
				{ID: 7, Word: "Finger", Pronunciation: "fing-ger", Phoneme: "/ŋ/"},
				{ID: 8, Word: "Hammer", Pronunciation: "ham-er", Phoneme: "/m/"},
			},
		},
		{
			ID:         "final_consonants",
			Name:       "FINAL CONSONANTS",
			CheckNotes: "Word-final consonant production",
			Words: []models.Word{
				{ID: 1, Word: "Cup", Pronunciation: "kuhp", Phoneme: "/p/"},
				{ID: 2, Word: "Bed", Pronunciation: "bed", Phoneme: "/d/"},
				{ID: 3, Word: "Book", Pronunciation: "buk", Phoneme: "/k/"},
				{ID: 4, Word: "Bus", Pronunciation: "buhs", Phoneme: "/s/"},
				{ID: 5, Word: "Leaf", Pronunciation: "leef", Phoneme: "/f/"},
				{ID: 6, Word: "Drum", Pronunciation: "druhm", Phoneme: "/m/"},
				{ID: 7, Word: "Pen", Pronunciation: "pen", Phoneme: "/n/"},
				{ID: 8, Word: "Dog", Pronunciation: "dawg", Phoneme: "/g/"},
			},
		},
		{
			ID:         "consonant_blends",
			Name:       "CONSONANT BLENDS",
			CheckNotes: "Consonant cluster production",
			Words: []models.Word{
				{ID: 1, Word: "Star", Pronunciation: "star", Phoneme: "/st/"},
				{ID: 2, Word: "Blue", Pronunciation: "bloo", Phoneme: "/bl/"},
				{ID: 3, Word: "Frog", Pronunciation: "frawg", Phoneme: "/fr/"},
				{ID: 4, Word: "Spoon", Pronunciation: "spoon", Phoneme: "/sp/"},
				{ID: 5, Word: "Truck", Pronunciation: "truhk", Phoneme: "/tr/"},
				{ID: 6, Word: "Snake", Pronunciation: "snayk", Phoneme: "/sn/"},
				{ID: 7, Word: "Clown", Pronunciation: "klown", Phoneme: "/kl/"},
				{ID: 8, Word: "Plane", Pronunciation: "playn", Phoneme: "/pl/"},
				{ID: 9, Word: "Green", Pronunciation: "green", Phoneme: "/gr/"},
				{ID: 10, Word: "Slide", Pronunciation: "slyd", Phoneme: "/sl/"},
			},
		},
		{
			ID:         "fricatives_affricates",
			Name:       "FRICATIVES & AFFRICATES",
			CheckNotes: "Fricative and affricate production",
			Words: []models.Word{
				{ID: 1, Word: "Shoe", Pronunciation: "shoo", Phoneme: "/ʃ/"},
				{ID: 2, Word: "Chair", Pronunciation: "chair", Phoneme: "/tʃ/"},
				{ID: 3, Word: "Thumb", Pronunciation: "thuhm", Phoneme: "/θ/"},
				{ID: 4, Word: "This", Pronunciation: "this", Phoneme: "/ð/"},
				{ID: 5, Word: "Jump", Pronunciation: "juhmp", Phoneme: "/dʒ/"},
				{ID: 6, Word: "Feather", Pronunciation: "feth-er", Phoneme: "/ð/"},
				{ID: 7, Word: "Zipper", Pronunciation: "zip-er", Phoneme: "/z/"},
				{ID: 8, Word: "Fishing", Pronunciation: "fish-ing", Phoneme: "/ʃ/"},
			},
		},
		{
			ID:         "liquids_glides",
			Name:       "LIQUIDS & GLIDES",
			CheckNotes: "/r/, /l/, /w/, /j/ production",
			Words: []models.Word{
				{ID: 1, Word: "Red", Pronunciation: "red", Phoneme: "/r/"},
				{ID: 2, Word: "Lamp", Pronunciation: "lamp", Phoneme: "/l/"},
				{ID: 3, Word: "Yellow", Pronunciation: "yel-oh", Phoneme: "/j/"},
				{ID: 4, Word: "Watch", Pronunciation: "wach", Phoneme: "/w/"},
				{ID: 5, Word: "Orange", Pronunciation: "or-inj", Phoneme: "/r/"},
				{ID: 6, Word: "Balloon", Pronunciation: "buh-loon", Phoneme: "/l/"},
				{ID: 7, Word: "Rocket", Pronunciation: "rok-it", Phoneme: "/r/"},
				{ID: 8, Word: "Umbrella", Pronunciation: "uhm-brel-uh", Phoneme: "/l/"},
			},
		},
	},
}

