package messages

// CLI messages for the gradlew entry point.
const (
	// RootUse is the CLI command name.
	RootUse = "gradlew [gradle arguments]"
	// RootShort is the short description for the root command.
	RootShort = "Download, cache, and run the Gradle distribution pinned in gradle-wrapper.properties"
	RootLong  = "gradlew reads gradle-wrapper.properties from its own directory, downloads and extracts the\n" +
		"configured distribution on first use, and runs bin/gradle with every argument passed through."

	// ExitFmt formats a silent exit error.
	ExitFmt = "exit %d"
)
