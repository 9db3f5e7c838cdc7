/*
Package dvid provides the shared vocabulary for plane extraction: pixel types and byte
order, plane orientations, the pixel set description, typed errors, logging, and record
serialization.
*/
package dvid
