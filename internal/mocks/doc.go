// Package mocks provides testify/mock implementations of the store, service
// and auth interfaces, shared by the test suites of the packages that
// consume them.
//
// Usage:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, id).Return(nil, store.ErrUserNotFound)
//	defer users.AssertExpectations(t)
package mocks
