// Package checksum hashes intermediate files so a pipeline can tell that the
// file it reads back is the file it wrote.
//
// # Example Usage
//
//	calc := checksum.New()
//	sum := calc.Calculate(data)
//	...
//	if !checksum.Matches(calc, reread, sum) {
//	    // the file changed between stages
//	}
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
