package config

// Property keys read from gradle-wrapper.properties.
const (
	KeyDistributionURL  = "distributionUrl"
	KeyDistributionBase = "distributionBase"
	KeyDistributionPath = "distributionPath"
	KeyZipStoreBase     = "zipStoreBase"
	KeyZipStorePath     = "zipStorePath"
	KeyNetworkTimeout   = "networkTimeout"
)

// PropertiesFileName is the wrapper config file expected next to the executable.
const PropertiesFileName = "gradle-wrapper.properties"

// BaseProject places a cache relative to the project directory.
// Any other base value selects the Gradle user home.
const BaseProject = "PROJECT"

// BaseGradleUserHome is the default base and the name of the environment override.
const BaseGradleUserHome = "GRADLE_USER_HOME"

// EnvGradleUserHome overrides the global cache home directory.
const EnvGradleUserHome = "GRADLE_USER_HOME"

// DefaultDistributionPath is used when distributionPath is not set.
const DefaultDistributionPath = "wrapper/dists"

// userHomeDirName is the directory under the user's home used when GRADLE_USER_HOME is unset.
const userHomeDirName = ".gradle"
