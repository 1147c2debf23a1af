package docs

// componentGuidance holds the extra bullet points for well-known components,
// keyed by section then component id.
var componentGuidance = map[Section]map[string][]string{
	SectionUsage: {
		"button": {
			"Use primary buttons for the main action",
			"Use normal buttons for secondary actions",
			"Use link buttons for tertiary actions",
			"Use icon buttons for compact UI elements",
		},
		"table": {
			"Use tables to display structured data",
			"Include sorting and filtering for large datasets",
			"Use pagination for tables with many rows",
			"Provide clear column headers",
		},
		"form": {
			"Group related form fields together",
			"Provide clear labels for all form fields",
			"Indicate required fields",
			"Display validation errors inline",
		},
	},
	SectionAccessibility: {
		"button": {
			"Ensure buttons have descriptive labels",
			"Use aria-label for icon-only buttons",
			"Maintain focus states for keyboard navigation",
		},
		"table": {
			"Use proper table markup with headers",
			"Ensure keyboard navigation works for all table interactions",
			"Provide text alternatives for any visual indicators",
		},
		"form": {
			"Associate labels with form controls",
			"Provide error messages that are announced by screen readers",
			"Ensure form can be completed using keyboard only",
		},
	},
	SectionDesign: {
		"button": {
			"Use appropriate button variants based on importance",
			"Maintain consistent button sizing",
			"Use icons sparingly and with clear meaning",
		},
		"table": {
			"Align text appropriately (left for text, right for numbers)",
			"Use zebra striping for better readability",
			"Highlight selected rows clearly",
		},
		"form": {
			"Maintain consistent spacing between form elements",
			"Align form fields and labels consistently",
			"Use appropriate field widths based on expected input",
		},
	},
	SectionBestPractices: {
		"button": {
			`Use verb-noun format for button labels (e.g., "Save changes")`,
			"Disable buttons when actions are not available",
			"Provide loading states for asynchronous actions",
		},
		"table": {
			"Implement efficient data loading for large datasets",
			"Provide empty state messaging when no data is available",
			"Allow users to customize their table view",
		},
		"form": {
			"Validate input as users type",
			"Preserve user input when validation fails",
			"Provide clear success confirmation",
		},
	},
	SectionCommonPitfalls: {
		"button": {
			"Using too many primary buttons on a single page",
			"Not providing enough visual distinction between button types",
			"Using buttons when links would be more appropriate",
		},
		"table": {
			"Loading too much data at once, causing performance issues",
			"Not handling empty or error states",
			"Making tables too wide for mobile screens",
		},
		"form": {
			"Creating forms that are too long without breaking into steps",
			"Not providing clear validation messages",
			"Not preserving user input when errors occur",
		},
	},
}

// migrationNotes are appended to the migration guide of stable components.
var migrationNotes = map[string]string{
	"button": "### Migrating from v1 to v2\n- The `size` prop has been renamed to `variant`\n" +
		"- The `primary` prop has been removed in favor of `variant=\"primary\"`",
	"table": "### Migrating from v1 to v2\n- The `items` prop now requires a unique `id` for each item\n" +
		"- The `onSort` prop has been replaced with `onSortingChange`",
	"form": "### Migrating from v1 to v2\n- Form fields now require explicit `id` props\n" +
		"- The `error` prop has been renamed to `errorText`",
}

var categoryGuidance = map[string][]string{
	"navigation": {
		"Use consistent navigation patterns throughout your application",
		"Provide clear visual indicators for the current location",
		"Ensure navigation is accessible via keyboard",
	},
	"layout": {
		"Use containers to group related content",
		"Maintain consistent spacing between containers",
		"Use appropriate container variants based on content importance",
	},
	"input": {
		"Group related form fields together",
		"Provide clear validation feedback",
		"Use appropriate input types for different data",
	},
}

var patternGuidance = map[Section]map[string][]string{
	SectionUsage: {
		"data-table": {
			"Use for displaying structured data that needs sorting and filtering",
			"Implement pagination for large datasets",
			"Provide clear column headers and sorting indicators",
		},
		"form-layout": {
			"Use for collecting user input in a structured way",
			"Group related fields together",
			"Provide clear validation feedback",
			"Include appropriate actions (submit, cancel)",
		},
	},
	SectionBestPractices: {
		"data-table": {
			"Implement efficient data loading for large datasets",
			"Preserve user's sorting and filtering preferences",
			"Provide empty and loading states",
			"Allow users to customize their view",
		},
		"form-layout": {
			"Validate input as users type",
			"Preserve user input when validation fails",
			"Provide clear success confirmation",
			"Use appropriate field types for different data",
		},
	},
}

const (
	defaultCategoryGuidance = "Follow Cloudscape Design System guidelines for consistent user experience."
	defaultPatternUsage     = "Follow Cloudscape Design System guidelines for consistent user experience."
	defaultPatternPractices = "Follow Cloudscape Design System best practices for optimal user experience."
)
