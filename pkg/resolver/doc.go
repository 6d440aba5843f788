// Package resolver finds the calendar unit that best describes the period
// between two instants.
//
// The resolution is the coarsest unit whose boundaries both instants fall
// on: 2017-01-01 to 2019-01-01 is two years, 2017-01-30 to 2017-02-06 is one
// ISO week, 2017-04-03 to 2019-05-03T13:32 is a count of minutes. Resolve
// also renders the period in the abbreviated (2017..2018) and ISO
// (2017/2019) notations of package codec.
//
// A caller may force a resolution. Forcing a unit coarser than the
// instants allow, or one that does not divide the period evenly, fails with
// ErrInvalidForcedResolution.
package resolver
