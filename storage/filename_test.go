package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "My cool movie.mov", want: "My_cool_movie.mov"},
		{in: "../../../etc/passwd", want: "etc_passwd"},
		{in: `C:\Users\me\song.mp3`, want: "C_Users_me_song.mp3"},
		{in: "i contain cool \u00fcml\u00e4uts.txt", want: "i_contain_cool_umlauts.txt"},
		{in: "track (live) [2019].flac", want: "track_live_2019.flac"},
		{in: "  .hidden  ", want: "hidden"},
		{in: "con.txt", want: "_con.txt"},
		{in: "../", want: ""},
		{in: "\u97f3\u4e50.mp3", want: "mp3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SecureFilename(tt.in), tt.in)
	}
}
