package render

// Tailwind classes applied to generated nodes. They must stay in step with
// the site's stylesheet build, which scans these strings.
const (
	NavLinkClass = "px-3 py-1 text-sm bg-gray-100 dark:bg-gray-700 rounded-full hover:bg-blue-100 dark:hover:bg-blue-900 hover:text-blue-700 dark:hover:text-blue-300 transition-colors"

	ImageClass      = "w-full rounded-xl shadow-md border border-gray-200 dark:border-gray-700"
	CardClass       = "p-4 bg-white dark:bg-gray-800 rounded-lg shadow-sm relative"
	DateBadgeClass  = "text-[10px] text-gray-300 dark:text-gray-600 font-mono absolute top-4 right-3"
	CommitLinkClass = "absolute bottom-2 right-3 text-[10px] text-gray-300 dark:text-gray-600 hover:text-blue-400 font-mono"

	sectionClass     = "mb-16"
	headerClass      = "flex items-center gap-3 mb-6"
	titleClass       = "text-2xl font-bold text-gray-800 dark:text-gray-200"
	figureClass      = "my-8 max-w-xl mx-auto"
	figcaptionClass  = "text-sm text-gray-500 dark:text-gray-400 mt-2 text-center"
	gridClass        = "grid grid-cols-1 md:grid-cols-2 gap-4"
	titleRowClass    = "flex items-baseline mb-2"
	featureNameClass = "font-semibold text-gray-900 dark:text-gray-100"
	descriptionClass = "text-sm text-gray-600 dark:text-gray-400"
)

func iconBoxClass(bg string) string {
	return "w-10 h-10 " + bg + " rounded-lg flex items-center justify-center"
}

func iconClass(color string) string {
	return "w-5 h-5 " + color
}
