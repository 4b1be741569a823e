package kompis

// Version is the current release of the kompis module.
const Version = "0.3.0"
