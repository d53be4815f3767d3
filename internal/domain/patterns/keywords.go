package patterns

import "github.com/finsift/finsift/internal/domain/record"

// Amount cascade. Currency-labeled forms come before bare numbers with
// trailing debit/credit markers; the first pattern that captures a value wins.
var amountPatterns = []string{
	// Rs. 1,234.50 / INR 500 / ₹99
	`(?i)(?:rs\.?|inr|₹)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
	// 1,234.50 Rs / 500 INR
	`(?i)([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*(?:rs\.?|inr|₹)`,
	// amount/amt labeled: "Amt: 450.00"
	`(?i)(?:amount|amt)[^0-9₹]{0,10}([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
	// verb-adjacent: "debited by 500", "paid 1200"
	`(?i)(?:debited|credited|paid|received|spent|withdrawn|transferred)\s+(?:by|with|for|of)?\s*(?:rs\.?|inr|₹)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
	// bare number with trailing debit/credit marker: "450.00 debited", "500 Dr"
	`(?i)([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*(?:debited|credited|dr\b|cr\b)`,
}

// Direction keyword sets. Phrases are counted as substrings; single words as
// whole tokens. Ties and zero counts resolve to DEBIT.
var debitKeywords = []string{
	"debited", "spent", "paid", "withdrawn", "sent", "transfer to",
	"emi", "charged", "dr", "purchase", "deducted",
}

var creditKeywords = []string{
	"credited", "received", "deposit", "deposited", "refund", "salary",
	"transfer from", "cr", "cashback",
}

// Merchant capture cascade, priority order. Each pattern captures the
// candidate name in group 1.
var merchantPatterns = []string{
	// "to AMAZON on ...", "at SWIGGY via ...", "merchant: FLIPKART"
	`(?i)\b(?:to|at|merchant|payee)[:\s]+([A-Za-z][A-Za-z0-9&.'\- ]{1,49}?)(?:\s+on\b|\s+via\b|\s+ref\b|\s+upi\b|\s+avl\b|[.,;]|$)`,
	// UPI virtual address: capture the handle before the @
	`([A-Za-z0-9.\-_]{2,50})@[A-Za-z][A-Za-z0-9]{1,15}\b`,
	// "paid to X", "received from X", "transfer to X"
	`(?i)(?:paid to|received from|transfer (?:to|from)|trf to)\s+([A-Za-z][A-Za-z0-9&.'\- ]{1,49}?)(?:\s+on\b|\s+via\b|\s+ref\b|[.,;]|$)`,
	// IMPS/NEFT/RTGS structured segment: IMPS/123456/JOHN DOE or NEFT-HDFC-ACME CORP
	`(?i)(?:imps|neft|rtgs)[/\- ](?:[A-Z0-9]{3,20}[/\- ])?([A-Za-z][A-Za-z ]{1,49}?)(?:[/.,;]|$)`,
	// generic "from X" last, it is the loosest
	`(?i)\bfrom\s+([A-Za-z][A-Za-z0-9&.'\- ]{1,49}?)(?:\s+on\b|\s+via\b|[.,;]|$)`,
}

// Known payees and apps, searched case-insensitively when no pattern
// captures a name. Longer or more specific tokens first.
var knownMerchants = []KnownMerchant{
	{"AMAZON", "Amazon"},
	{"AMZN", "Amazon"},
	{"FLIPKART", "Flipkart"},
	{"SWIGGY", "Swiggy"},
	{"ZOMATO", "Zomato"},
	{"BIGBASKET", "BigBasket"},
	{"BLINKIT", "Blinkit"},
	{"ZEPTO", "Zepto"},
	{"MYNTRA", "Myntra"},
	{"AJIO", "Ajio"},
	{"NETFLIX", "Netflix"},
	{"SPOTIFY", "Spotify"},
	{"HOTSTAR", "Hotstar"},
	{"BOOKMYSHOW", "BookMyShow"},
	{"MAKEMYTRIP", "MakeMyTrip"},
	{"GOIBIBO", "Goibibo"},
	{"IRCTC", "IRCTC"},
	{"UBER", "Uber"},
	{"OLA", "Ola"},
	{"RAPIDO", "Rapido"},
	{"PAYTM", "Paytm"},
	{"PHONEPE", "PhonePe"},
	{"GPAY", "Google Pay"},
	{"GOOGLE PAY", "Google Pay"},
	{"CRED", "CRED"},
	{"DMART", "DMart"},
	{"RELIANCE", "Reliance"},
	{"JIO", "Jio"},
	{"AIRTEL", "Airtel"},
	{"MEDPLUS", "MedPlus"},
	{"APOLLO", "Apollo"},
	{"DOMINOS", "Domino's"},
	{"MCDONALD", "McDonald's"},
	{"STARBUCKS", "Starbucks"},
	{"DECATHLON", "Decathlon"},
	{"IKEA", "IKEA"},
}

// Reference-number cascade; captures are capped by the extractor.
var referencePatterns = []string{
	`(?i)(?:upi\s*(?:ref(?:erence)?)?(?:\s*no)?)[.:#\s]*([0-9]{6,30})`,
	`(?i)(?:ref(?:erence)?(?:\s*no)?|txn(?:\s*id)?|transaction\s*(?:id|no))[.:#\s]*([A-Za-z0-9]{4,30})`,
}

// Balance cascade; same numeric-cleaning rule as amounts.
var balancePatterns = []string{
	`(?i)(?:avl\.?\s*bal(?:ance)?|available\s*bal(?:ance)?)[.:\s]*(?:rs\.?|inr|₹)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
	`(?i)\bbal(?:ance)?\b[.:\s]*(?:rs\.?|inr|₹)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
}

// Transaction keywords for the SMS validity gate.
var transactionKeywords = []string{
	"debited", "credited", "paid", "received", "spent", "withdrawn",
	"deposited", "transferred", "purchase", "txn", "transaction",
	"payment", "emi", "upi", "neft", "imps", "a/c",
}

// Bank and fintech sender tokens. Carrier short-codes embed these fragments
// (e.g. "VM-HDFCBK", "AD-SBIINB").
var bankSenders = []string{
	"HDFC", "HDFCBK", "ICICI", "ICICIB", "SBI", "SBIINB", "SBIPSG",
	"AXIS", "AXISBK", "KOTAK", "KOTAKB", "IDFC", "IDFCFB", "YESBNK",
	"PNB", "PNBSMS", "BOB", "BOBTXN", "CANBNK", "UNIONB", "INDUSB",
	"FEDBNK", "RBLBNK", "AUBANK", "CITIBK", "SCBANK", "HSBC",
	"PAYTM", "PHONEPE", "GPAY", "AMAZONP", "SLICE", "JUPITER", "FIMONY",
	"CRED", "LAZYPAY", "SIMPL", "MOBIKW", "FREECHG",
}

// Statement noise rows: balances carried forward, totals, account metadata,
// pagination. Matched against the row description.
var noisePatterns = []string{
	`(?i)opening\s+balance`,
	`(?i)closing\s+balance`,
	`(?i)balance\s+(?:b/f|c/f|forward)`,
	`(?i)^\s*total\b`,
	`(?i)grand\s+total`,
	`(?i)account\s+(?:no|number|statement)`,
	`(?i)\bifsc\b`,
	`(?i)\bmicr\b`,
	`(?i)branch\s+(?:name|code|address)`,
	`(?i)page\s+\d+\s+of\s+\d+`,
	`(?i)statement\s+(?:period|of\s+account)`,
	`(?i)^\s*date\s*$`,
}

// Statement date layouts in fixed priority order: day-first before
// month-first, four-digit years before two-digit.
var dateFormats = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"02/01/06",
	"02-01-06",
	"02 Jan 2006",
	"02-Jan-2006",
	"02 Jan 06",
	"01/02/2006",
	"01-02-2006",
}

// dateTokenPattern finds a date-looking token in a free-text statement line.
var dateTokenPattern = `(?i)\b(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}[ \-](?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[ \-]\d{2,4})\b`

// Category decision list, evaluated top to bottom over body+merchant text;
// the first matching rule wins. Car-loan EMI is checked before home-loan EMI
// and neither matches a bare "loan", so qualified EMIs never fall through to
// the generic rules below them.
var categoryRules = []CategoryRule{
	{record.CategoryFood, []string{
		"swiggy", "zomato", "restaurant", "cafe", "dining", "eatery",
		"dominos", "mcdonald", "kfc", "pizza", "burger", "biryani", "food order",
	}},
	{record.CategoryCarLoanEMI, []string{
		"car loan", "auto loan", "vehicle loan", "car emi", "auto emi",
	}},
	{record.CategoryHomeLoanEMI, []string{
		"home loan", "housing loan", "mortgage", "home emi", "housing fin",
	}},
	{record.CategoryUtilities, []string{
		"electricity", "power bill", "water bill", "gas bill", "broadband",
		"postpaid", "recharge", "dth", "bescom", "tneb", "mseb", "utility",
	}},
	{record.CategoryEntertainment, []string{
		"bookmyshow", "movie", "cinema", "pvr", "inox", "gaming", "concert",
	}},
	{record.CategoryShopping, []string{
		"amazon", "flipkart", "myntra", "ajio", "shopping", "mall", "store",
		"mart", "decathlon", "ikea",
	}},
	{record.CategoryHealth, []string{
		"hospital", "pharmacy", "medical", "clinic", "apollo", "medplus",
		"doctor", "diagnostic", "lab test",
	}},
	{record.CategoryTravel, []string{
		"irctc", "flight", "indigo", "spicejet", "vistara", "makemytrip",
		"goibibo", "railway", "uber", "ola", "rapido", "metro", "bus ticket",
		"hotel", "airbnb", "oyo",
	}},
	{record.CategoryEducation, []string{
		"school", "college", "university", "tuition", "course", "udemy",
		"coursera", "exam fee",
	}},
	{record.CategoryInsurance, []string{
		"insurance", "policy premium", "lic of india", "lic premium",
	}},
	{record.CategorySubscriptions, []string{
		"netflix", "spotify", "hotstar", "prime video", "youtube premium",
		"subscription", "membership",
	}},
	{record.CategoryGroceries, []string{
		"bigbasket", "blinkit", "zepto", "grofers", "dmart", "grocery",
		"supermarket", "kirana",
	}},
	{record.CategoryFuel, []string{
		"petrol", "diesel", "fuel", "hpcl", "bpcl", "indian oil", "ioc",
		"filling station",
	}},
	{record.CategoryRent, []string{
		"rent", "landlord", "lease",
	}},
	{record.CategoryPersonalCare, []string{
		"salon", "spa", "parlour", "grooming", "haircut",
	}},
	{record.CategoryGifts, []string{
		"gift", "wedding", "donation",
	}},
	{record.CategorySalary, []string{
		"salary", "payroll", "wages", "stipend",
	}},
	// Transfer matches almost anything mentioning a payment rail, so it is
	// evaluated last.
	{record.CategoryTransfer, []string{
		"upi", "neft", "imps", "rtgs", "transfer", "sent to", "received from",
	}},
}

// The five investment tiers in evaluation order. Contributions are additive;
// the retirement tier is checked last and overrides earlier sub-types.
var investmentTiers = []InvestmentTier{
	{
		Name:    "mandate",
		Weight:  40,
		SubType: record.InvestmentSIP,
		Keywords: []string{
			"UMRN", "NACH", "ECS", "MANDATE", "AUTOPAY", "AUTO-DEBIT",
			"AUTO DEBIT", "STANDING INSTRUCTION", "SI-",
		},
	},
	{
		Name:    "market-infra",
		Weight:  35,
		SubType: record.InvestmentMutualFund,
		Keywords: []string{
			"BSE", "NSE", "CAMS", "KFINTECH", "KARVY", "CDSL", "NSDL",
			"SEBI", "AMFI", "CLEARING CORP",
		},
	},
	{
		Name:   "vocabulary",
		Weight: 25,
		// Sub-type resolved per keyword, see classify.vocabularySubType.
		Keywords: []string{
			"SIP", "SYSTEMATIC INVESTMENT", "MUTUAL FUND", "NAV", "UNITS",
			"FOLIO", "ISIN", "EQUITY", "STOCK", "SHARES", "DEMAT",
			"ELSS", "INDEX FUND", "GROWTH PLAN", "DIRECT PLAN",
			"REDEMPTION", "DIVIDEND",
		},
	},
	{
		Name:    "platform",
		Weight:  20,
		SubType: record.InvestmentMutualFund,
		Keywords: []string{
			"ZERODHA", "GROWW", "UPSTOX", "KUVERA", "COIN", "ANGEL ONE",
			"ICICI DIRECT", "HDFC SEC", "KOTAK SECURITIES", "PAYTM MONEY",
			"SBI MUTUAL", "HDFC AMC", "ICICI PRUDENTIAL AMC", "NIPPON INDIA",
			"ADITYA BIRLA SUN", "AXIS MUTUAL", "UTI MUTUAL", "MIRAE ASSET",
			"PARAG PARIKH",
		},
	},
	{
		Name:     "retirement",
		Weight:   30,
		Override: true,
		Keywords: []string{
			"PPF", "PUBLIC PROVIDENT", "NPS", "NATIONAL PENSION",
			"PENSION SCHEME", "PROVIDENT FUND",
		},
	},
}
