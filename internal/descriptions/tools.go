package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	AnalyzeTemplatesDescription = `Load legal document templates and extract their fillable fields.

**When to use:** At the start of a filling session, or whenever the set of templates changes.

**Why it's useful:** Scans each template for {{CATEGORY.FIELD_NAME|TYPE|OPTIONS}} placeholder tokens, deduplicates fields across the whole batch, and returns them organized by category so a form can be rendered in one pass.

**Examples:**
• Start a divorce filing: "Analyze petition.txt, financial-affidavit.md, and summons.pdf"
• Rebuild the form after edits: "Re-analyze the motion templates in the case folder"

**Common workflows:**
1. Intake: tfa_search_templates → tfa_analyze_templates → render form from categories
2. Iteration: edit template → re-analyze → previously entered values are kept

**Best practices:** Templates are processed in order; a file that fails extraction is reported in its entry and does not block the others. Supported inputs: .txt, .md, .html, .pdf.`

	FieldCategoriesDescription = `Return the extracted fields organized by category.

**When to use:** To render or refresh the data-entry form after analysis.

**Why it's useful:** Categories are sorted alphabetically and fields are sorted by name within each, so the form layout is stable. Each field carries its kind (TEXT, DATE, PHONE, SELECT, CALCULATED) and, for SELECT fields, the declared choice list.

**Best practices:** CALCULATED fields are filled automatically from derivation rules (for example county → judicial circuit) and should be rendered read-only.`

	SetFieldValueDescription = `Set the value of one field by its CATEGORY.NAME key.

**When to use:** On every user edit; last write wins.

**Why it's useful:** Writing a field that drives a derivation rule (such as COURT.COUNTY) automatically fills the dependent field (COURT.CIRCUIT); a value with no table entry leaves the dependent field untouched.

**Best practices:** Store raw input here; formatting (phone punctuation, long-form dates) is applied at generation time, not at entry time.`

	ValidateFieldsDescription = `Check that every required field has a value before generating documents.

**When to use:** Before tfa_generate_documents, or to show completion state in the form.

**Why it's useful:** Returns the exact list of missing fields so the user can be prompted. Fields of kind CALCULATED are exempt: their values arrive via derivation rules and an empty one never blocks generation.`

	GenerateDocumentsDescription = `Fill the analyzed templates with the collected values and write the documents.

**When to use:** After validation passes, to produce the final filled documents.

**Why it's useful:** Every occurrence of each placeholder token is replaced with the type-formatted value. Output encoding per template: "auto" picks RTF for templates with formatting and plain text otherwise; "pdf" renders paginated letterhead pages; "text"/"rtf" force an encoding.

**Examples:**
• "Generate all documents as PDF"
• "Generate only petition.txt and summons.txt as text"

**Common workflows:**
1. Validate → generate → download per-document results
2. A failing template is reported as its own failed result; the rest of the batch still completes

**Best practices:** Generation is refused while required fields are missing. Validate first and prompt for the listed fields.`

	ExportValuesDescription = `Export all field values as a flat, pretty-printed JSON object.

**When to use:** To save a client's data between sessions or move it to another matter.

**Why it's useful:** The export is a plain key→value document keyed by CATEGORY.NAME, readable and diffable, and re-importable with tfa_import_values.`

	ImportValuesDescription = `Import field values from a previously exported JSON document.

**When to use:** To restore a saved session or pre-fill a new matter from client data.

**Why it's useful:** Keys present in the document overwrite current values exactly as exported, including derived fields; keys not mentioned are left untouched. A malformed document is rejected without modifying any value.`

	SearchTemplatesDescription = `List template files in a directory with optional fuzzy filename matching.

**When to use:** To discover which templates are available before analyzing them.

**Examples:**
• "Find all templates in the family-law folder"
• "Search the template directory for 'affidavit'"

**Best practices:** Only supported template types (.txt, .md, .html, .pdf) are listed; pass the returned paths straight to tfa_analyze_templates.`

	ServerInfoDescription = `Get server information, session progress, available tools, and usage guidance.

**When to use:** At the start of a session to discover capabilities, or to show progress (templates analyzed, fields extracted, values completed).`
)
