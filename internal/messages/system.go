package messages

// Config messages for locating and loading gradle-wrapper.properties.
const (
	// ConfigSystemRequired indicates a nil System was passed to config resolution.
	ConfigSystemRequired             = "config system is required"
	ConfigResolveExecutableFmt       = "resolve wrapper executable: %w"
	ConfigReadPropertiesFmt          = "read %s: %w"
	ConfigParsePropertiesFmt         = "parse %s: %w"
	ConfigMissingDistributionURLFmt  = "distributionUrl is not defined in %s"
	ConfigInvalidDistributionURLFmt  = "invalid distributionUrl %q: %w"
	ConfigRelativeDistributionURLFmt = "distributionUrl %q must be an absolute URL"
	ConfigMissingArchiveNameFmt      = "distributionUrl %q does not name an archive"
	ConfigUnsupportedArchiveFmt      = "distributionUrl %q must point to a .zip archive"
	ConfigInvalidNetworkTimeoutFmt   = "invalid networkTimeout %q: expected a non-negative number of milliseconds"
	ConfigResolveAbsPathFmt          = "resolve absolute path for %s: %w"
)

// Dispatch messages for the download, extract, and launch pipeline.
const (
	// DispatchSystemRequired indicates a nil System was passed to the pipeline.
	DispatchSystemRequired = "dispatch system is required"

	DispatchCheckArchiveFmt            = "check cached archive %s: %w"
	DispatchCreateStoreDirFmt          = "create archive store %s: %w"
	DispatchCreateTempFileFmt          = "create temp file: %w"
	DispatchSyncTempFileFmt            = "sync temp file: %w"
	DispatchCloseTempFileFmt           = "close temp file: %w"
	DispatchMoveArchiveFmt             = "move archive into place: %w"
	DispatchBuildRequestFmt            = "build request for %s: %w"
	DispatchDownloadFailedFmt          = "download %s: %w"
	DispatchDownloadTimeoutFmt         = "download %s: request timed out after %s"
	DispatchDownloadUnexpectedFmt      = "download %s: unexpected status %s"
	DispatchDownloadNotFoundFmt        = "download %s: distribution not found (HTTP 404)\n\nRemediation:\n  - Check distributionUrl in %s\n  - Verify the Gradle version exists"
	DispatchCheckDistributionFmt       = "check distribution %s: %w"
	DispatchCreateDistributionDirFmt   = "create distribution dir %s: %w"
	DispatchRemoveStaleExtractFmt      = "remove incomplete extraction %s: %w"
	DispatchCreateExtractTempFmt       = "create extraction dir: %w"
	DispatchOpenArchiveFmt             = "open archive %s: %w"
	DispatchIllegalEntryFmt            = "illegal entry path %q in %s"
	DispatchUnsupportedEntryFmt        = "unsupported entry %q in %s: symbolic links are not extracted"
	DispatchCreateEntryDirFmt          = "create directory %s: %w"
	DispatchCreateEntryFileFmt         = "create file %s: %w"
	DispatchReadEntryFmt               = "read entry %s: %w"
	DispatchWriteEntryFmt              = "write file %s: %w"
	DispatchMoveExtractionFmt          = "move extraction into place: %w"
	DispatchMissingDistributionHomeFmt = "archive %s does not contain %s"

	DispatchDownloadingFmt = "Downloading Gradle from %s\n"
	DispatchExtractingFmt  = "Extracting Gradle to %s\n"

	DispatchOpenLockFmt    = "open lock %s: %w"
	DispatchLockFmt        = "lock %s: %w"
	DispatchLockTimeoutFmt = "timed out after %s waiting for lock %s; another wrapper may be downloading or extracting"

	DispatchLauncherMissingFmt = "gradle launcher not found at %s: %w"
	DispatchLauncherIsDirFmt   = "gradle launcher %s is a directory"
	DispatchChmodLauncherFmt   = "make %s executable: %w"
	DispatchStartLauncherFmt   = "start %s: %w"
	DispatchWaitLauncherFmt    = "wait for %s: %w"
)
