package llm

import "fmt"

func queryParsePrompt(query string) string {
	return fmt.Sprintf(`You are a search query parser for a wholesale phone marketplace.

Parse this search query and extract structured parameters: %q

Return ONLY a valid JSON object (no markdown, no explanation) with these fields:
{
  "brand": "Apple" or "Samsung" or null,
  "model": "iPhone 14 Pro" or "Galaxy S23" or null (include model number/name),
  "storage": "128GB" or "256GB" or null,
  "grade": "Brand New" or "Refurb A" or "Refurb B" or "Refurb C" or "Refurb D" or null,
  "priceMin": number or null,
  "priceMax": number or null,
  "phoneOrigin": "US" or "HK" or "JP" or "EU" or "AU" or null,
  "region": "Nigeria" or "Dubai" or "Kenya" or "Pakistan" or null (for profit calculation)
}

Examples:
- "iPhone 14 A-grade Nigeria under $250" -> {"brand":"Apple","model":"iPhone 14","grade":"Refurb A","priceMax":250,"region":"Nigeria"}
- "Samsung bulk cheap" -> {"brand":"Samsung","priceMax":300}
- "Best profit iPhones Japan origin" -> {"brand":"Apple","phoneOrigin":"JP"}

Return ONLY the JSON object.`, query)
}

func csvParsePrompt(csvText string) string {
	return fmt.Sprintf(`You are a CSV parser for wholesale phone inventory. Parse this CSV and extract product data.

CSV Content:
%s

Return ONLY a valid JSON array (no markdown, no explanation) with this structure:
[
  {
    "brand": "Apple" or "Samsung",
    "model": "iPhone 14 Pro Max" (full model name),
    "storage": "128GB" or "256GB" etc,
    "grade": "Brand New" or "Refurb A" or "Refurb B" or "Refurb C" or "Refurb D",
    "phoneOrigin": "US" or "HK" or "JP" or "EU" or "AU",
    "wholesalerRegion": "USA" or "Hong Kong" or "China",
    "retailPrice": number (wholesale price in USD),
    "units": number (stock quantity),
    "sku": "unique identifier",
    "carrier": "Unlocked" or carrier name,
    "simType": "Physical SIM" or "Dual SIM" or "eSIM"
  }
]

Rules:
- Extract ALL products from the CSV
- Convert prices to numbers (remove $ symbols)
- Normalize grade names (A -> Refurb A, New -> Brand New)
- If origin is "Hong Kong", convert to "HK"
- If data is missing, use sensible defaults
- Return ONLY the JSON array`, csvText)
}

func chatPrompt(message, inventory string) string {
	return fmt.Sprintf(`You are a wholesale inventory assistant for a phone marketplace. Answer this query based on the inventory data. Your ONLY data source is the inventory provided below; refuse questions unrelated to the catalog.

User Query: %q

Inventory Data:
%s

Provide a helpful response. If they ask for a price list, format it as a markdown table.
If they ask for export, tell them the data is ready and provide a summary.
For contact questions, direct them to the marketplace contact endpoint.`, message, inventory)
}
