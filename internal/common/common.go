package common

import (
	"fmt"
	"net/http"
)

func GetWithRetry(req *http.Request, name string) (*http.Response, error) {
	var resp *http.Response
	var err error

	validResp, retries := false, 3
	for !validResp {
		resp, err = http.DefaultClient.Do(req)
		if err != nil {
			if retries > 1 {
				retries--
				continue
			} else {
				return nil, fmt.Errorf("error on %v api request: %s", name, err.Error())
			}
		} else if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			if retries > 1 {
				retries--
				continue
			} else {
				return nil, fmt.Errorf("error code %v returned from %v", resp.StatusCode, name)
			}
		} else {
			validResp = true
		}
	}
	return resp, nil
}
