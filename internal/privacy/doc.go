// Package privacy computes the aggregate privacy score for one scan.
//
// The engine is a pure function of its inputs: it derives five bounded
// sub-scores (IP privacy, DNS privacy, WebRTC privacy, fingerprint
// resistance, browser config), sums them into a [0,100] total, classifies
// the risk level, and raises structured vulnerability findings. Absent
// inputs are first-class: a missing leak result scores its band as 0
// rather than erroring.
package privacy
