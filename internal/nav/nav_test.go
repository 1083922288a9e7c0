package nav

import "testing"

func TestStackPushAndBack(t *testing.T) {
	s := NewStack(RouteLogin)
	var changes []Entry
	s.OnChange(func(from, to Entry) { changes = append(changes, to) })

	s.Navigate(RouteProjects, Params{})
	s.Navigate(RouteProjectDetail, Params{ProjectID: 7})

	if got := s.Current(); got.Route != RouteProjectDetail || got.Params.ProjectID != 7 {
		t.Fatalf("unexpected current %+v", got)
	}
	if s.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", s.Depth())
	}

	if !s.Back() {
		t.Fatalf("expected back to succeed")
	}
	if s.Current().Route != RouteProjects {
		t.Fatalf("expected projects after back, got %v", s.Current().Route)
	}
	if s.Back() {
		t.Fatalf("expected back at root to fail")
	}
	if len(changes) != 3 {
		t.Fatalf("expected 3 change callbacks, got %d", len(changes))
	}
}

func TestNavigateToRootResetsHistory(t *testing.T) {
	s := NewStack(RouteProjects)
	s.Navigate(RouteProjectDetail, Params{ProjectID: 1})
	s.Navigate(RouteLogin, Params{})

	if s.Depth() != 1 || s.Current().Route != RouteLogin {
		t.Fatalf("expected a single login entry, got depth %d route %v", s.Depth(), s.Current().Route)
	}
}

func TestRouteString(t *testing.T) {
	if RouteProjectDetail.String() != "project" {
		t.Fatalf("unexpected name %q", RouteProjectDetail.String())
	}
	if Route(9).String() != "route(9)" {
		t.Fatalf("unexpected name %q", Route(9).String())
	}
}
