package config

import "testing"

func TestNewLineConfigKnownProfile(t *testing.T) {
	lc, err := NewLineConfig(ProfileBT8x8PAL)
	if err != nil {
		t.Fatalf("NewLineConfig(%q): %v", ProfileBT8x8PAL, err)
	}
	if lc.Name != ProfileBT8x8PAL {
		t.Errorf("Name = %q, want %q", lc.Name, ProfileBT8x8PAL)
	}
}

func TestNewLineConfigUnknownProfile(t *testing.T) {
	_, err := NewLineConfig("not-a-real-profile")
	if _, ok := err.(ErrUnknownProfile); !ok {
		t.Fatalf("err = %v (%T), want ErrUnknownProfile", err, err)
	}
}

func TestProfilesListsRegisteredNames(t *testing.T) {
	names := Profiles()
	found := false
	for _, n := range names {
		if n == ProfileBT8x8PAL {
			found = true
		}
	}
	if !found {
		t.Errorf("Profiles() = %v, want it to include %q", names, ProfileBT8x8PAL)
	}
}
