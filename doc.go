// Package sampler implements the real-time core of a polyphonic granular
// sampler: per-instance circular record buffers, a fixed voice/grain pool
// per instance, envelope-windowed grain playback, and a lock-free
// triple-buffered visualisation snapshot for a UI reader.
//
// The package is the audio engine only. Plug-in host adapters, GUI
// toolkits, WAV decoding, MIDI-CC mapping and preset serialisation are
// external collaborators that drive this package through Sampler's
// exported methods; none of that glue lives here.
package sampler
