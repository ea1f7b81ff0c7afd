package analyzer

import (
	"fmt"
	"strings"

	"policylens/apimodels"
)

// BuildPrompt renders the instruction prompt for the request. Product
// requests get the product-specific variant, everything else the
// company-wide one. Pure and deterministic.
func BuildPrompt(req apimodels.AnalysisRequest) string {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		url = "Not provided"
	}
	if req.Product != "" {
		return fmt.Sprintf(productPromptTemplate, req.Product, req.Company, url)
	}
	return fmt.Sprintf(companyPromptTemplate, req.Company, url)
}

// ResponseSchema returns the JSON Schema hint matching the request shape.
func ResponseSchema(req apimodels.AnalysisRequest) string {
	if req.Product != "" {
		return productAnalysisOutputSchema
	}
	return companyAnalysisOutputSchema
}

const productPromptTemplate = `
You are an AI assistant specialized in analyzing Terms of Service (TOS) and Privacy Policies to make them understandable for everyday users. Your task is to thoroughly analyze the policies for a specific product from a specific company, identify all significant potential concerns, explain them in very simple terms, list them starting with the most serious, find a product icon, identify and return the URLs of the found policy documents, and return the entire output as a single JSON object. You may be provided with a direct URL to the product's policy page or main product page.

Product Name: "%[1]s"
Company Name: "%[2]s"
Optional Product Policy Page URL: "%[3]s"

Your Process:

1.  Locate Policies:
    - If the optional policy page URL is provided: Prioritize this URL. Navigate to it and locate the official Terms of Service (TOS) AND the official Privacy Policy documents for "%[1]s".
    - If the optional policy page URL is NOT provided: Search the web to locate the official Terms of Service (TOS) AND the official Privacy Policy documents specifically for the product named "%[1]s" as offered by the company "%[2]s".
    - Record URLs: If found, record the direct URLs to the ToS document and the Privacy Policy document. If a single document covers both, record that URL for both fields. If one is found but not the other, record what is found.
    - Strict Focus: Your analysis MUST be confined ONLY to the policies for this specific product from this specific company.
    - Exclusion: Do NOT search for or analyze the company's general policies (unless they are explicitly the only policies governing this specific product), related products, other products from the same company, or different companies, unless the provided URL clearly indicates these are the applicable documents.

2.  Search for Icon: Search for a publicly accessible URL for a logo or icon representing the product "%[1]s". If a suitable, publicly accessible URL which is a direct url to the image is found, use it. If not, this value will be null.

3.  Existence Check and Initial JSON Structure:
    - If Policies Not Found (even after checking the provided URL if any): Your entire output MUST be a JSON object matching the schema below, with "policies_found" set to false, "tos_url" and "privacy_policy_url" set to null, "red_flags" and "consumer_friendliness_grade" set to null, and "suggestions_if_not_found" populated.
    - If Policies Found: Proceed to step 4, with "policies_found" set to true and "suggestions_if_not_found" set to null.

4.  Thorough Analysis (If Policies Found):
    - Carefully and comprehensively read both the TOS and the Privacy Policy for "%[1]s" using the documents found in Step 1.
    - Identify all "red flags" for a consumer. A red flag is any term that could be significantly bad for the user. Pay close attention to and look specifically for common areas of concern, including but not limited to:
        - How the company uses the user's personal data and content.
        - The user's liability.
        - Dispute resolution.
        - The company's ability to change terms or terminate service.
        - Limitations on the company's liability to the user.
        - Opt-out procedures.
    - For each red flag, write a very short explanation (1-2 simple sentences at most) using everyday, non-legal language. Focus on the direct impact on the user.
    - Assign a single consumer-friendliness grade (S, A, B, or C) to the combined TOS and Privacy Policy. (S: Great, A: Pretty good, B: Be careful, C: Not good). The grade must be based on how many red flags were found and their severity.

5.  Ordering Red Flags: Internally, determine the order of red flags from MOST concerning (biggest potential negative impact) to LEAST concerning.

6.  JSON Output (Final Step):
    - Your entire output MUST be a single, valid JSON object. Do NOT include any text outside of this JSON object.
    - The JSON object must conform to the following structure:

    {
      "entity_name": "%[1]s",
      "analyzed_for": "product",
      "company_name": "%[2]s",
      "input_url_provided": "URL_IF_PROVIDED_ELSE_NULL",
      "icon_url": "URL_OF_PRODUCT_ICON_OR_NULL",
      "policies_found": true_OR_false,
      "tos_url": "URL_OF_FOUND_TOS_OR_NULL",
      "privacy_policy_url": "URL_OF_FOUND_PRIVACY_POLICY_OR_NULL",
      "suggestions_if_not_found": ["Suggestion 1", ...]_OR_NULL_OR_MESSAGE_ABOUT_URL,
      "red_flags": [
        {
          "concern_level": 1,
          "description": "SIMPLE EXPLANATION of MOST concerning Red Flag."
        },
        {
          "concern_level": 2,
          "description": "SIMPLE EXPLANATION of next most concerning Red Flag."
        }
      ]_OR_NULL,
      "consumer_friendliness_grade": "S_OR_A_OR_B_OR_C"_OR_NULL
    }

    - Ensure "red_flags" are ordered by "concern_level".
    - If "policies_found" is false, "tos_url", "privacy_policy_url", "red_flags", and "consumer_friendliness_grade" MUST be null.
    - If "policies_found" is true, "suggestions_if_not_found" MUST be null.
`

const companyPromptTemplate = `
You are an AI assistant specialized in analyzing company-wide Terms of Service (TOS) and Privacy Policies to make them understandable for everyday users. Your task is to thoroughly analyze the general policies for a specific company, identify all significant potential concerns, explain them in very simple terms, list them starting with the most serious, find a company icon, identify and return the URLs of the found policy documents, and return the entire output as a single JSON object. You may be provided with a direct URL to the company's policy page.

Company Name: "%[1]s"
Optional Company Policy Page URL: "%[2]s"

Your Process:

1.  Locate Policies:
    - If the optional policy page URL is provided: Prioritize this URL. Navigate to it and locate the official general, company-wide, or umbrella Terms of Service (TOS) AND Privacy Policy documents for "%[1]s".
    - If the optional policy page URL is NOT provided: Search the web to locate the official general, company-wide, or umbrella Terms of Service (TOS) AND Privacy Policy documents for the company named "%[1]s".
    - Record URLs: If found, record the direct URLs to the ToS document and the Privacy Policy document. If a single document covers both, record that URL for both fields. If one is found but not the other, record what is found.
    - Strict Focus: Your analysis MUST be confined ONLY to these overarching company policies.
    - Exclusion: Do NOT analyze policies for specific individual products UNLESS they are the de facto general company policy or the provided URL clearly indicates these are the applicable documents.

2.  Search for Icon: Search for a publicly accessible URL for a logo or icon representing the company "%[1]s". If a suitable, publicly accessible URL which is a direct url to the image is found, use it. If not, this value will be null.

3.  Existence Check and Initial JSON Structure:
    - If Policies Not Found (even after checking the provided URL if any): Your entire output MUST be a JSON object matching the schema below, with "policies_found" set to false, "tos_url" and "privacy_policy_url" set to null, "red_flags" and "consumer_friendliness_grade" set to null, and "suggestions_if_not_found" populated.
    - If Policies Found: Proceed to step 4, with "policies_found" set to true and "suggestions_if_not_found" set to null.

4.  Thorough Analysis (If Policies Found):
    - Carefully and comprehensively read both the general/company-wide TOS and the Privacy Policy for "%[1]s" using the documents found in Step 1.
    - Identify all "red flags" for a consumer. A red flag is any term that could be significantly bad for the user when dealing with the company generally. Pay close attention to and look specifically for common areas of concern, including but not limited to:
        - How the company uses user data across its services.
        - Overall user liability and dispute resolution.
        - Company's rights to change terms or affect user accounts broadly.
        - Data sharing practices across the company or with third parties.
    - For each red flag, write a very short explanation (1-2 simple sentences at most) using everyday, non-legal language. Focus on the direct impact on the user.
    - Assign a single consumer-friendliness grade (S, A, B, or C) to the combined policies. (S: Great, A: Pretty good, B: Be careful, C: Not good). The grade must be based on how many red flags were found and their severity.

5.  Ordering Red Flags: Internally, determine the order of red flags from MOST concerning (biggest potential negative impact) to LEAST concerning.

6.  JSON Output (Final Step):
    - Your entire output MUST be a single, valid JSON object. Do NOT include any text outside of this JSON object.
    - The JSON object must conform to the following structure:

    {
      "entity_name": "%[1]s",
      "analyzed_for": "company",
      "input_url_provided": "URL_IF_PROVIDED_ELSE_NULL",
      "icon_url": "URL_OF_COMPANY_ICON_OR_NULL",
      "policies_found": true_OR_false,
      "tos_url": "URL_OF_FOUND_TOS_OR_NULL",
      "privacy_policy_url": "URL_OF_FOUND_PRIVACY_POLICY_OR_NULL",
      "suggestions_if_not_found": ["Suggestion 1", ...]_OR_NULL_OR_MESSAGE_ABOUT_URL,
      "red_flags": [
        {
          "concern_level": 1,
          "description": "SIMPLE EXPLANATION of MOST concerning Red Flag."
        },
        {
          "concern_level": 2,
          "description": "SIMPLE EXPLANATION of next most concerning Red Flag."
        }
      ]_OR_NULL,
      "consumer_friendliness_grade": "S_OR_A_OR_B_OR_C"_OR_NULL
    }

    - Ensure "red_flags" are ordered by "concern_level".
    - If "policies_found" is false, "tos_url", "privacy_policy_url", "red_flags", and "consumer_friendliness_grade" MUST be null.
    - If "policies_found" is true, "suggestions_if_not_found" MUST be null.
`

const productAnalysisOutputSchema = `
{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "additionalProperties": false,
    "definitions": {
        "RedFlagItem": {
            "additionalProperties": false,
            "properties": {
                "concern_level": {
                    "description": "Order of concern, 1 being most concerning.",
                    "type": "number"
                },
                "description": {
                    "description": "A very short, simple explanation of the red flag (1-2 sentences, everyday words).",
                    "type": "string"
                }
            },
            "required": [
                "concern_level",
                "description"
            ],
            "type": "object"
        }
    },
    "properties": {
        "analyzed_for": {
            "const": "product",
            "description": "Specifies that the analysis is for a product.",
            "type": "string"
        },
        "company_name": {
            "description": "The name of the company that makes the product.",
            "type": "string"
        },
        "consumer_friendliness_grade": {
            "anyOf": [
                {
                    "enum": [
                        "A",
                        "B",
                        "C",
                        "S"
                    ],
                    "type": "string"
                },
                {
                    "type": "null"
                }
            ],
            "description": "Overall consumer-friendliness grade (S, A, B, C). Null if policies were not found."
        },
        "entity_name": {
            "description": "The name of the product analyzed.",
            "type": "string"
        },
        "icon_url": {
            "description": "A publicly accessible URL for the product logo/icon, or null if not found.",
            "type": [
                "null",
                "string"
            ]
        },
        "input_url_provided": {
            "description": "The policy page URL provided by the user for analysis, if any.",
            "type": [
                "null",
                "string"
            ]
        },
        "policies_found": {
            "description": "True if policies were found and analyzed, false otherwise.",
            "type": "boolean"
        },
        "privacy_policy_url": {
            "description": "The direct URL of the Privacy Policy document found, or null.",
            "type": [
                "null",
                "string"
            ]
        },
        "red_flags": {
            "anyOf": [
                {
                    "items": {
                        "$ref": "#/definitions/RedFlagItem"
                    },
                    "type": "array"
                },
                {
                    "type": "null"
                }
            ],
            "description": "A list of red flags, ordered from most to least concerning by concern_level. Null if policies were not found."
        },
        "suggestions_if_not_found": {
            "anyOf": [
                {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                },
                {
                    "type": [
                        "null",
                        "string"
                    ]
                }
            ],
            "description": "Suggested alternatives or a message if policies were not found at the provided URL. Null if policies were found."
        },
        "tos_url": {
            "description": "The direct URL of the Terms of Service document found, or null.",
            "type": [
                "null",
                "string"
            ]
        }
    },
    "required": [
        "analyzed_for",
        "company_name",
        "entity_name",
        "policies_found"
    ],
    "type": "object"
}
`

const companyAnalysisOutputSchema = `
{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "additionalProperties": false,
    "definitions": {
        "RedFlagItem": {
            "additionalProperties": false,
            "properties": {
                "concern_level": {
                    "description": "Order of concern, 1 being most concerning.",
                    "type": "number"
                },
                "description": {
                    "description": "A very short, simple explanation of the red flag (1-2 sentences, everyday words).",
                    "type": "string"
                }
            },
            "required": [
                "concern_level",
                "description"
            ],
            "type": "object"
        }
    },
    "properties": {
        "analyzed_for": {
            "const": "company",
            "description": "Specifies that the analysis is for a company's general policies.",
            "type": "string"
        },
        "consumer_friendliness_grade": {
            "anyOf": [
                {
                    "enum": [
                        "A",
                        "B",
                        "C",
                        "S"
                    ],
                    "type": "string"
                },
                {
                    "type": "null"
                }
            ],
            "description": "Overall consumer-friendliness grade (S, A, B, C). Null if policies were not found."
        },
        "entity_name": {
            "description": "The name of the company analyzed.",
            "type": "string"
        },
        "icon_url": {
            "description": "A publicly accessible URL for the company logo/icon, or null if not found.",
            "type": [
                "null",
                "string"
            ]
        },
        "input_url_provided": {
            "description": "The policy page URL provided by the user for analysis, if any.",
            "type": [
                "null",
                "string"
            ]
        },
        "policies_found": {
            "description": "True if policies were found and analyzed, false otherwise.",
            "type": "boolean"
        },
        "privacy_policy_url": {
            "description": "The direct URL of the Privacy Policy document found, or null.",
            "type": [
                "null",
                "string"
            ]
        },
        "red_flags": {
            "anyOf": [
                {
                    "items": {
                        "$ref": "#/definitions/RedFlagItem"
                    },
                    "type": "array"
                },
                {
                    "type": "null"
                }
            ],
            "description": "A list of red flags, ordered from most to least concerning by concern_level. Null if policies were not found."
        },
        "suggestions_if_not_found": {
            "anyOf": [
                {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                },
                {
                    "type": [
                        "null",
                        "string"
                    ]
                }
            ],
            "description": "Suggested alternatives or a message if policies were not found at the provided URL. Null if policies were found."
        },
        "tos_url": {
            "description": "The direct URL of the Terms of Service document found, or null.",
            "type": [
                "null",
                "string"
            ]
        }
    },
    "required": [
        "analyzed_for",
        "entity_name",
        "policies_found"
    ],
    "type": "object"
}
`
